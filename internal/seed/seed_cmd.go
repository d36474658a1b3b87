package seed

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the "seed" command. newRunner is called only after flags
// validate, so connecting to the database can be deferred until then.
func NewRootCmd(newRunner func() (Runner, error)) *cobra.Command {
	opts := Options{
		Workspaces:   DefaultWorkspaces,
		UsersPerTeam: DefaultUsersPerTeam,
		Password:     DefaultPassword,
	}

	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Wipe the database and load demo workspaces, teams and users",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}

			r, err := newRunner()
			if err != nil {
				return err
			}

			summary, err := r.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), summary, opts.Password)
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.Workspaces, "workspaces", "w", opts.Workspaces, "number of workspaces to create")
	cmd.Flags().IntVarP(&opts.UsersPerTeam, "users-per-team", "u", opts.UsersPerTeam, "USER accounts per team besides the manager")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", opts.Password, "password shared by every seeded account")

	return cmd
}

func printSummary(w io.Writer, s Summary, password string) {
	fmt.Fprintln(w, "Seeding complete!")
	fmt.Fprintf(w, "  Workspaces : %d\n", s.Workspaces)
	fmt.Fprintf(w, "  Teams      : %d\n", s.Teams)
	fmt.Fprintf(w, "  Users      : %d\n", s.Users)
	fmt.Fprintf(w, "All users share the password: %s\n", password)
}
