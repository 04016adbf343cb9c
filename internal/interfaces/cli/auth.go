package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"momfit.app/cli/internal/application/services"
	"momfit.app/cli/internal/auth"
)

func newLoginCommand(state *runtimeState) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:     "login",
		Short:   "Sign in to momfit",
		Long:    `Sign in with your email and password. The session is kept between runs and renewed automatically.`,
		Example: `  momfit login --email mom@example.com --password '...'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			if err := state.container.Auth.Login(ctx, email, password); err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Logged in as %s", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newSignupCommand(state *runtimeState) *cobra.Command {
	var req services.SignupRequest

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a momfit account",
		Example: `  momfit signup --email mom@example.com --password '...' --name "Jane" --birth-date 1993-04-02`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			msg, err := state.container.Auth.Signup(ctx, req)
			if err != nil {
				return err
			}
			printSuccess(cmd.OutOrStdout(), "Account created for %s", req.Email)
			if msg != "" {
				printHint(cmd.OutOrStdout(), "%s", msg)
			}
			printHint(cmd.OutOrStdout(), "Run 'momfit login' to sign in")
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&req.Password, "password", "", "Account password")
	cmd.Flags().StringVar(&req.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&req.BirthDate, "birth-date", "", "Birth date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			if err := state.container.Auth.Logout(ctx); err != nil {
				state.logger.Warn("server logout failed, local session cleared anyway", "error", err)
			}
			printSuccess(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// tokenClaims is the subset of access token claims shown by status.
type tokenClaims struct {
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// decodeClaims reads claims without verifying the signature; the CLI only
// displays them and the backend remains the authority.
func decodeClaims(token string) (*tokenClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	out := &tokenClaims{}
	out.Subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		out.Email = email
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.Time
	}
	return out, nil
}

func newStatusCommand(state *runtimeState) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Long:  `Show whether you are signed in. A session saved by an earlier run is renewed first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd, state)
			defer cancel()
			out := cmd.OutOrStdout()

			token, err := state.container.Auth.CurrentToken(ctx)
			if errors.Is(err, auth.ErrNotAuthenticated) {
				fmt.Fprintln(out, errorStyle.Render("❌ Not logged in"))
				printHint(out, "Run 'momfit login' to sign in")
				return nil
			}
			if err != nil {
				return err
			}

			printTitle(out, "🔑 Session")
			fields := [][2]string{
				{"Endpoint", state.config.APIEndpoint},
				{"Access token", maskToken(token)},
			}
			if claims, err := decodeClaims(token); err == nil {
				fields = append(fields,
					[2]string{"User", claims.Subject},
					[2]string{"Email", claims.Email},
				)
				if !claims.ExpiresAt.IsZero() {
					fields = append(fields, [2]string{"Expires", fmt.Sprintf("%s (in %s)",
						claims.ExpiresAt.Local().Format(time.RFC1123), time.Until(claims.ExpiresAt).Round(time.Second))})
				}
			} else {
				state.logger.Debug("access token is not a JWT", "error", err)
			}
			printFields(out, fields)
			return nil
		},
	}
}
