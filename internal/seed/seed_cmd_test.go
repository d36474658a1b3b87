package seed_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"team-pulse/internal/seed"

	"github.com/stretchr/testify/assert"
)

type fakeRunner struct {
	got seed.Options
	err error
}

func (f *fakeRunner) Run(_ context.Context, opts seed.Options) (seed.Summary, error) {
	f.got = opts
	if f.err != nil {
		return seed.Summary{}, f.err
	}
	w, teams, users := seed.BuildPlan(opts.Workspaces, opts.UsersPerTeam).Counts()
	return seed.Summary{Workspaces: w, Teams: teams, Users: users}, nil
}

func execute(runner seed.Runner, args ...string) (string, bool, error) {
	connected := false
	cmd := seed.NewRootCmd(func() (seed.Runner, error) {
		connected = true
		return runner, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), connected, err
}

func TestSeedCmd(t *testing.T) {
	t.Run("success defaults", func(t *testing.T) {
		r := &fakeRunner{}

		out, _, err := execute(r)

		assert.NoError(t, err)
		assert.Equal(t, seed.Options{Workspaces: 10, UsersPerTeam: 5, Password: "Password123!"}, r.got)
		assert.Contains(t, out, "Users      : 250")
	})

	t.Run("success flags override", func(t *testing.T) {
		r := &fakeRunner{}

		out, _, err := execute(r, "--workspaces", "2", "-u", "1", "--password", "changeme123")

		assert.NoError(t, err)
		assert.Equal(t, 2, r.got.Workspaces)
		assert.Equal(t, 1, r.got.UsersPerTeam)
		assert.Contains(t, out, "changeme123")
	})

	t.Run("negative invalid flags never connect", func(t *testing.T) {
		_, connected, err := execute(&fakeRunner{}, "--workspaces", "0")

		assert.Error(t, err)
		assert.False(t, connected)
	})

	t.Run("negative runner error surfaces", func(t *testing.T) {
		_, _, err := execute(&fakeRunner{err: errors.New("db down")})

		assert.EqualError(t, err, "db down")
	})
}
