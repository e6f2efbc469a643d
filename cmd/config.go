package cmd

type Config struct {
	HTTPPort          string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSslMode         string
	GeocodingAPIKey   string
	GeocodingEndpoint string
	RabbitMQURL       string
	RabbitMQExchange  string
}
