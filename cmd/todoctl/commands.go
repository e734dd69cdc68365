package main

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todoctl",
		Short:         "Todo API CLI",
		Long:          "Command line interface for the todo list API. Set TODO_API_URL to target another server.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newListCmd(),
		newAddCmd(),
		newToggleCmd(),
		newRemoveCmd(),
	)
	return root
}

func newRegisterCmd() *cobra.Command {
	var username, password, email string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient().post("/register", map[string]string{
				"username": username, "password": password, "email": email,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s. User id: %s\n", env.Message, env.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&email, "email", "", "email address")
	return cmd
}

func newLoginCmd() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check credentials and print the user id",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient().post("/login", map[string]string{
				"username": username, "password": password,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.UserID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&password, "password", "", "password")
	return cmd
}

func newListCmd() *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's todos",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient().get("/get_list", url.Values{"userId": {userID}})
			if err != nil {
				return err
			}
			renderTodos(cmd.OutOrStdout(), env.List)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	return cmd
}

func newAddCmd() *cobra.Command {
	var userID string
	var done bool
	cmd := &cobra.Command{
		Use:   "add <value...>",
		Short: "Add a todo",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient().post("/add_list", map[string]interface{}{
				"value":      strings.Join(args, " "),
				"isComplete": done,
				"userId":     userID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	cmd.Flags().BoolVar(&done, "done", false, "create the todo already completed")
	return cmd
}

func newToggleCmd() *cobra.Command {
	return newTodoRefCmd("toggle <todo-id>", "Flip a todo between open and done", "/update_list")
}

func newRemoveCmd() *cobra.Command {
	return newTodoRefCmd("remove <todo-id>", "Delete a todo", "/del_list")
}

func newTodoRefCmd(use, short, path string) *cobra.Command {
	var userID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newAPIClient().post(path, map[string]string{"id": args[0], "userId": userID})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.Message)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "owner user id")
	return cmd
}

// renderTodos prints todos as a table.
func renderTodos(out io.Writer, todos []todoItem) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"ID", "Value", "Done", "Created"})
	for _, todo := range todos {
		done := ""
		if todo.IsComplete {
			done = "x"
		}
		t.AppendRow(table.Row{todo.ID, todo.Value, done, todo.CreatedAt.Format("2006-01-02 15:04")})
	}
	t.Render()
}
