package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer memuat model casbin dari file; policy tidak ikut dari file
// melainkan di-load belakangan dari tabel database oleh rbac.Service.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	enforcer, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}
	enforcer.EnableAutoSave(false)
	return enforcer, nil
}
