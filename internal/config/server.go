package config

// Server holds the hunt server configuration, resolved once from the
// environment at startup. Backend selection is by presence: a NATS URL picks
// the JetStream KV store over Postgres, a Postgres URL picks Postgres over the
// local JSON file. Absence of both means full local-filesystem operation.
type Server struct {
	Port string

	// Team collection backends
	NATSURL     string // remote key-value store (JetStream)
	PostgresURL string // kv table in Postgres
	DataFile    string // local JSON fallback

	// Media backends
	MediaBucket string // JetStream object store bucket; requires NATSURL
	UploadDir   string // local media directory, served under /uploads
	PublicURL   string // absolute base URL for remotely stored media

	LogLevel   string
	LogFile    string
	LogConsole bool
}

// ServerFromEnv builds the server configuration from environment variables
func ServerFromEnv() *Server {
	return &Server{
		Port:        getEnv("PORT", "8080"),
		NATSURL:     getEnv("BUSANHUNT_NATS_URL", ""),
		PostgresURL: getEnv("BUSANHUNT_DATABASE_URL", ""),
		DataFile:    getEnv("BUSANHUNT_DATA_FILE", "db.json"),
		MediaBucket: getEnv("BUSANHUNT_MEDIA_BUCKET", ""),
		UploadDir:   getEnv("BUSANHUNT_UPLOAD_DIR", "public/uploads"),
		PublicURL:   getEnv("BUSANHUNT_PUBLIC_URL", "http://localhost:8080"),
		LogLevel:    getEnv("BUSANHUNT_LOG_LEVEL", "INFO"),
		LogFile:     getEnv("BUSANHUNT_LOG_FILE", ""),
		LogConsole:  getEnv("BUSANHUNT_LOG_CONSOLE", "true") == "true",
	}
}

// RemoteKV reports whether the remote key-value backend is configured
func (s *Server) RemoteKV() bool {
	return s.NATSURL != ""
}

// RemoteMedia reports whether the remote media backend is configured
func (s *Server) RemoteMedia() bool {
	return s.NATSURL != "" && s.MediaBucket != ""
}
