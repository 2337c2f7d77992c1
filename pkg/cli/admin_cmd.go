package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"studio-site/internal/app"
	internaldb "studio-site/internal/db"
	"studio-site/internal/db/repository"
	"studio-site/internal/domain"
)

func newAdminCmd(open storeOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage console users",
	}
	cmd.AddCommand(newAdminCreateCmd(open), newAdminListCmd(open))
	return cmd
}

func newAdminCreateCmd(open storeOpener) *cobra.Command {
	var (
		email       string
		password    string
		super       bool
		permissions []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a console user, bypassing permission checks",
		Long: "Create a console user directly in the database. Use this to bootstrap the first\n" +
			"super admin; later users can be managed from the console.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			caps := make([]domain.Capability, 0, len(permissions))
			for _, p := range permissions {
				c, ok := domain.ParseCapability(strings.TrimSpace(p))
				if !ok {
					return fmt.Errorf("unknown permission %q", p)
				}
				caps = append(caps, c)
			}

			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := internaldb.Migrate(st.Write.DB); err != nil {
				return err
			}

			u, err := app.SeedAdmin(cmd.Context(), st, domain.CreateAdminRequest{
				Email:          email,
				Password:       password,
				IsUnrestricted: super,
				Capabilities:   caps,
			})
			if err != nil {
				return err
			}
			return printAdmins(cmd, []domain.AdminUser{*u})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Sign-in email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Sign-in password (required)")
	cmd.Flags().BoolVar(&super, "super", false, "Grant unrestricted access")
	cmd.Flags().StringSliceVar(&permissions, "permission", nil, "Capability to grant (repeatable)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newAdminListCmd(open storeOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List console users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := open()
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck

			users, err := repository.NewAdminRepo(st.Read).List(cmd.Context())
			if err != nil {
				return err
			}
			return printAdmins(cmd, users)
		},
	}
}

type adminJSON struct {
	UserID       string   `json:"user_id"`
	Email        string   `json:"email"`
	Unrestricted bool     `json:"unrestricted"`
	Capabilities []string `json:"capabilities"`
}

func printAdmins(cmd *cobra.Command, users []domain.AdminUser) error {
	out := make([]adminJSON, 0, len(users))
	for _, u := range users {
		caps := make([]string, 0, len(u.Capabilities))
		for _, c := range u.Capabilities {
			caps = append(caps, string(c))
		}
		out = append(out, adminJSON{UserID: u.UserID, Email: u.Email, Unrestricted: u.IsUnrestricted, Capabilities: caps})
	}

	if getOutputFormat(cmd) == "json" {
		return printJSON(cmd.OutOrStdout(), out)
	}
	rows := make([][]string, 0, len(out))
	for _, u := range out {
		access := strings.Join(u.Capabilities, ",")
		if u.Unrestricted {
			access = "unrestricted"
		}
		rows = append(rows, []string{u.UserID, u.Email, access})
	}
	return printTable(cmd.OutOrStdout(), []string{"USER ID", "EMAIL", "ACCESS"}, rows)
}
