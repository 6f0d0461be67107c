package config

import "fmt"

// ASR holds the deployment capability flags consumed by provider selection.
// None of these are validated for correctness at startup; they are only
// checked for presence when a provider is selected or invoked.
type ASR struct {
	// WhisperBin is the path to a whisper.cpp executable. Presence selects
	// the local-binary backend.
	WhisperBin string `yaml:"whisper_cpp_bin" mapstructure:"whisper_cpp_bin"`
	// WhisperModel is the model file passed to whisper.cpp.
	WhisperModel string `yaml:"whisper_cpp_model" mapstructure:"whisper_cpp_model"`
	// DeepgramKey is the Deepgram API credential. Presence selects the
	// remote-API backend when no local binary is configured.
	DeepgramKey string `yaml:"deepgram_api_key" mapstructure:"deepgram_api_key"`
	// DeepgramModel is the Deepgram model requested per call.
	DeepgramModel string `yaml:"deepgram_model" mapstructure:"deepgram_model"`
}

// ApplyDefaults fills model identifiers; capability flags stay as given.
func (c *ASR) ApplyDefaults() {
	if c.WhisperModel == "" {
		c.WhisperModel = "ggml-large-v3.bin"
	}
	if c.DeepgramModel == "" {
		c.DeepgramModel = "nova-2"
	}
}

// Dirs holds the filesystem layout for uploads and produced artifacts.
type Dirs struct {
	// Data is where uploaded audio and chain-of-custody records are stored.
	Data string `yaml:"data_dir" mapstructure:"data_dir"`
	// Export is where exported transcripts are written.
	Export string `yaml:"export_dir" mapstructure:"export_dir"`
}

// ApplyDefaults fills in default directories.
func (c *Dirs) ApplyDefaults() {
	if c.Data == "" {
		c.Data = "uploads"
	}
	if c.Export == "" {
		c.Export = "exports"
	}
}

// Tracing configures the OpenTelemetry exporter.
type Tracing struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`
}

// ApplyDefaults fills in development defaults for tracing.
func (c *Tracing) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// Server holds HTTP server configuration.
type Server struct {
	Host         string   `yaml:"host" mapstructure:"host"`
	Port         int      `yaml:"port" mapstructure:"port"`
	ReadTimeout  int      `yaml:"read_timeout" mapstructure:"read_timeout"`   // seconds
	WriteTimeout int      `yaml:"write_timeout" mapstructure:"write_timeout"` // seconds
	IdleTimeout  int      `yaml:"idle_timeout" mapstructure:"idle_timeout"`   // seconds
	CORSOrigins  []string `yaml:"cors_origins" mapstructure:"cors_origins"`
	// MaxBodyBytes caps the request body; uploads are court audio, so the
	// default is generous.
	MaxBodyBytes int64 `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// ApplyDefaults sets sensible default values for unset fields.
func (c *Server) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 5050
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 15
	}
	if c.WriteTimeout == 0 {
		// Transcription responses can take a while behind slow backends.
		c.WriteTimeout = 600
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 60
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 512 << 20
	}
}

// Validate checks the configuration for invalid values.
func (c *Server) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535 (got: %d)", c.Port)
	}
	return nil
}

// Config is the full configuration of the Courtly server.
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server  Server  `yaml:"server" mapstructure:"server"`
	ASR     ASR     `yaml:"asr" mapstructure:"asr"`
	Dirs    Dirs    `yaml:"dirs" mapstructure:"dirs"`
	Tracing Tracing `yaml:"tracing" mapstructure:"tracing"`
}

// ApplyDefaults applies defaults to every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.ASR.ApplyDefaults()
	c.Dirs.ApplyDefaults()
	c.Tracing.ApplyDefaults()
}

// Validate validates every section. Capability flags in ASR are deliberately
// not validated: selection falls back to the offline provider when they are
// absent, and adapters re-check presence at call time.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return nil
}
