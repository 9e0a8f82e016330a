package policy_test

import (
	"testing"

	"github.com/reglet-dev/reglet-permissions/domain/entities"
	"github.com/reglet-dev/reglet-permissions/domain/policy"
)

func FuzzCheckNet(f *testing.F) {
	p := policy.NewPolicy(policy.WithDenialHandler(&policy.NopDenialHandler{}))
	grants := &entities.GrantSet{Net: []string{"example.com", "*.internal:8080"}}
	f.Add("example.com")
	f.Add("api.internal:8080")
	f.Add("[::1]:80")
	f.Add("evil.com")

	f.Fuzz(func(t *testing.T, host string) {
		// We just ensure it doesn't panic
		p.Check(entities.Net(host), grants)
	})
}

func FuzzCheckRead(f *testing.F) {
	p := policy.NewPolicy(
		policy.WithDenialHandler(&policy.NopDenialHandler{}),
		policy.WithSymlinkResolution(false),
	)
	grants := &entities.GrantSet{Read: []string{"/data/**", "/etc/hosts"}}
	f.Add("/data/file.txt")
	f.Add("/etc/hosts")
	f.Add("../../etc/passwd")

	f.Fuzz(func(t *testing.T, path string) {
		p.Check(entities.Read(path), grants)
	})
}
