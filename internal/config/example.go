package config

import (
	"os"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

const exampleConfig = `version: "1"

server:
  address: ":8080"
  read_timeout: 10s
  write_timeout: 30s
  max_body_bytes: 1048576

admin:
  enabled: true
  address: ":8081"
  metrics_path: /metrics

logging:
  level: info
  format: json

branding:
  product_name: PolicyGen
  footer_text: This privacy policy was generated using PolicyGen.
  markdown_header: true

history:
  enabled: false
  path: ${POLICYGEN_DATA_DIR}/history.db
  retention_days: 90
  prune_interval: 1h

events:
  enabled: false
  url: ${NATS_URL}
  subject: policy.generated
`

// WriteExample writes an example configuration to path.
func WriteExample(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.FileSystemError("configuration file already exists (use --force to overwrite)").
			WithContext("path", path).Build()
	}
	if err := os.WriteFile(path, []byte(exampleConfig), 0o600); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "write configuration file").
			WithContext("path", path).Build()
	}
	return nil
}
