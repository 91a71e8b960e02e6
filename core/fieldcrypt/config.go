package fieldcrypt

// Config holds the server-side secret.
type Config struct {
	// Secret derives the cipher key and keys the lookup hash. Changing it
	// invalidates every stored NRC.
	Secret string `mapstructure:"secret" default:"" validate:"required"`
}
