package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

const (
	defaultPort        = 3009
	defaultOpenAIModel = "gpt-3.5-turbo"
	defaultAuditDbPath = "rm_assistant.db"
)

// Secrets is the process configuration, resolved once at startup from the
// environment. An empty OpenAIApiKey disables narrative enhancement; it is
// not an error.
type Secrets struct {
	OpenAIApiKey string
	OpenAIModel  string
	Port         int
	AuditDbPath  string
}

func LoadSecrets() (*Secrets, error) {
	secrets := &Secrets{
		OpenAIApiKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		Port:         defaultPort,
		AuditDbPath:  os.Getenv("AUDIT_DB_PATH"),
	}

	if secrets.OpenAIModel == "" {
		secrets.OpenAIModel = defaultOpenAIModel
	}
	if secrets.AuditDbPath == "" {
		secrets.AuditDbPath = defaultAuditDbPath
	}
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		secrets.Port = port
	}

	return secrets, nil
}
