package config

type Config struct {
	// Cron spec for scheduled replay runs.
	UpdateFrequency string

	Banking BankingConfig
	Replay  ReplayConfig
	Goals   GoalsConfig
}

type Secrets struct {
	Banking  BankingSecrets
	Ynab     YnabSecrets
	Influx   InfluxSecrets
	SQL      SqlSecrets
	Airtable AirtableSecrets

	// Alternative to the SQL struct, designed to be used with a heroku style
	// env variable.
	DatabaseURL string `env:"DATABASE_URL"`
}

///////////////////////////////////////////////////////////////////////////////////////
// Banking
///////////////////////////////////////////////////////////////////////////////////////

type BankingConfig struct {
	// Base URL of the bank's open API, e.g. https://openapisandbox.investec.com
	Endpoint string           `json:"endpoint"`
	Currency string           `json:"currency"`
	Accounts []WatchedAccount `json:"accounts"`
}

// WatchedAccount is one bank account whose transactions feed the replay.
type WatchedAccount struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BankingSecrets struct {
	ClientID     string `json:"bankClientId" env:"BANK_CLIENT_ID"`
	ClientSecret string `json:"bankClientSecret" env:"BANK_CLIENT_SECRET"`
	APIKey       string `json:"bankApiKey" env:"BANK_API_KEY"`
}

///////////////////////////////////////////////////////////////////////////////////////
// Replay
///////////////////////////////////////////////////////////////////////////////////////

type ReplayConfig struct {
	// Source of transactions: "bank" (default) or "ynab".
	Source string `json:"source"`
	// Categories overrides or extends the built-in transaction type to
	// category mapping. Keys are matched case-insensitively.
	Categories map[string]string `json:"categories"`

	YnabBudgetID string `json:"ynabBudgetId"`

	SQL struct {
		Database     string
		ReportsTable string
	}
	Influx struct {
		Database    string
		Measurement string
	}
}

type YnabSecrets struct {
	YnabAccessToken string `json:"ynabAccessToken" env:"YNAB_ACCESS_TOKEN"`
}

type InfluxSecrets struct {
	InfluxEndpoint string `json:"influxEndpoint" env:"INFLUX_ENDPOINT"`
	InfluxUsername string `json:"influxUsername" env:"INFLUX_USERNAME"`
	InfluxPassword string `json:"influxPassword" env:"INFLUX_PASSWORD"`
}

type SqlSecrets struct {
	SqlHost     string `env:"SQL_HOST"`
	SqlUsername string `env:"SQL_USERNAME"`
	SqlPassword string `env:"SQL_PASSWORD"`
}

///////////////////////////////////////////////////////////////////////////////////////
// Goals
///////////////////////////////////////////////////////////////////////////////////////

type GoalsConfig struct {
	// Backend for the goal document store: "postgres" (default) or "airtable".
	Backend string `json:"backend"`

	SQL struct {
		Database   string
		GoalsTable string
	}
	Airtable struct {
		BaseID    string `json:"airtableBaseId"`
		TableName string `json:"airtableTableName"`
	}
}

type AirtableSecrets struct {
	AirtableAPIKey string `json:"airtableApiKey" env:"AIRTABLE_API_KEY"`
}
