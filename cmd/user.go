package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	userEntity "github.com/benedict-erwin/weather-insight/internal/entities/users"
	"github.com/benedict-erwin/weather-insight/pkg/utils"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
}

var (
	userEmail    string
	userPassword string

	userCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			u, err := c.Users.Create(cmd.Context(), &userEntity.CreateUserRequest{
				Email:    userEmail,
				Password: userPassword,
			})
			if err != nil {
				return err
			}
			fmt.Printf("User %s created (id %s)\n", u.Email, u.ID)
			return nil
		},
	}

	userListCmd = &cobra.Command{
		Use:   "list",
		Short: "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := bootstrap(cmd.Context())
			if err != nil {
				return err
			}
			defer c.Close()

			all, err := c.Users.FindAll(cmd.Context())
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header([]string{"ID", "Email", "Created At"})
			for _, u := range all {
				if err := table.Append([]string{u.ID, u.Email, utils.FormatTime(u.CreatedAt)}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
)

func init() {
	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "account e-mail")
	userCreateCmd.Flags().StringVar(&userPassword, "password", "", "account password (min 6 characters)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
}
