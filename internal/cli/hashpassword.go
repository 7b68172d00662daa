package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/roach88/almanac/internal/config"
	"github.com/roach88/almanac/internal/server"
)

// HashPasswordOptions holds flags for the hash-password command.
type HashPasswordOptions struct {
	*RootOptions
	Username string
	Save     bool
}

// NewHashPasswordCommand creates the hash-password command.
func NewHashPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashPasswordOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Hash a password for Basic Auth",
		Long: `Hash a password with Argon2id for use as Basic Auth credentials.

The password is read from the terminal without echo, or from stdin when
piped. With --save the credentials are written into the config file.

Example:
  almanac hash-password --username kay --save
  echo -n secret | almanac hash-password --username kay`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHashPassword(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Username, "username", "", "username for the credentials (required)")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "write the credentials into the config file")
	_ = cmd.MarkFlagRequired("username")

	return cmd
}

func runHashPassword(opts *HashPasswordOptions, cmd *cobra.Command) error {
	password, err := readPassword(cmd)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read password", err)
	}
	if password == "" {
		return NewExitError(ExitCommandError, "password must not be empty")
	}

	hash, err := server.HashPassword(password)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to hash password", err)
	}

	if opts.Save {
		cfg, err := config.Load(opts.Config)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load config", err)
		}
		cfg.Auth = &config.AuthConfig{Username: opts.Username, PasswordHash: hash}
		if err := config.Save(opts.Config, cfg); err != nil {
			return WrapExitError(ExitCommandError, "failed to save config", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "credentials for %q written to %s\n", opts.Username, opts.Config)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// readPassword prompts on a terminal without echo, twice, and falls back to
// a single line from stdin when input is piped.
func readPassword(cmd *cobra.Command) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Enter password: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}

	fmt.Fprint(cmd.OutOrStdout(), "Confirm password: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return "", err
	}

	if string(first) != string(second) {
		return "", fmt.Errorf("passwords do not match")
	}
	return string(first), nil
}
