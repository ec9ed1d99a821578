package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
	"git.home.luguber.info/inful/policygen/internal/validation"
)

// LoadSettings reads a settings file. Files ending in .json are decoded as
// JSON and everything else as YAML; both use the request field names.
func LoadSettings(path string) (*validation.PolicyRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundError("settings file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "read settings file").
			WithContext("path", path).Build()
	}

	req := &validation.PolicyRequest{}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, req)
	} else {
		err = yaml.Unmarshal(data, req)
	}
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryValidation, "parse settings file").
			WithContext("path", path).Build()
	}
	return req, nil
}

const sampleSettings = `# Answers to the policy questionnaire. Run
#   policygen generate -s %s
# to render a policy from this file.
websiteName: My Shop
websiteUrl: https://shop.example.com
websiteType: e-commerce
companyName: Example Ltd
companyEmail: privacy@example.com
companyCountry: United Kingdom
dataCollected:
  - name
  - email
  - address
  - payment_info
  - purchase_history
dataRetentionPeriod: 2_years
useCookies: true
cookieTypes:
  - essential
  - analytics
thirdPartyServices:
  analytics:
    - Google Analytics
  payment:
    - Stripe
otherThirdPartyServices: ""
gdprCompliance: true
ccpaCompliance: false
childrenPolicy: true
# effectiveDate: "2026-01-01"
`
