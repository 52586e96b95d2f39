package mirror

// Backend kinds accepted in Settings.Kind.
const (
	KindGRPC     = "grpc"
	KindPostgres = "postgres"
	KindS3       = "s3"
)

// Settings carries the connection configuration of a remote mirror.
//
// URL and Key mean different things per kind:
//
//	grpc      URL host:port of the mirror server, Key the device JWT
//	postgres  URL the DSN, Key the account the rows belong to
//	s3        URL the endpoint, Key "accessKey:secretKey"
type Settings struct {
	Kind     string
	URL      string
	Key      string
	Account  string
	S3Bucket string
	S3Region string
}

// IsRemoteConfigured is a pure presence check: a kind, a URL and a key must
// all be set. Nothing is dialed.
func IsRemoteConfigured(s Settings) bool {
	return s.Kind != "" && s.URL != "" && s.Key != ""
}
