package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	httpdomain "momfit.app/cli/internal/core/domain/http"
)

var apiMethods = map[string]bool{
	httpdomain.MethodGet:    true,
	httpdomain.MethodPost:   true,
	httpdomain.MethodPut:    true,
	httpdomain.MethodPatch:  true,
	httpdomain.MethodDelete: true,
}

func newAPICommand(state *runtimeState) *cobra.Command {
	var (
		data    string
		headers []string
	)

	cmd := &cobra.Command{
		Use:   "api <method> <path>",
		Short: "Make an authenticated request to any backend path",
		Long: `Send a raw JSON request with the current session. Expired access tokens are
renewed and the request replayed, exactly as for the other commands.`,
		Example: `  momfit api get /pregnancy/me
  momfit api post /symptom --data '{"symptoms":["FATIGUE"]}'
  momfit api delete /exercise-sessions/12`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			method := strings.ToUpper(args[0])
			if !apiMethods[method] {
				return fmt.Errorf("unsupported method %q", args[0])
			}

			req := httpdomain.RequestContext{Method: method, Path: args[1]}
			if data != "" {
				if !json.Valid([]byte(data)) {
					return fmt.Errorf("--data is not valid JSON")
				}
				req.Body = json.RawMessage(data)
			}
			if len(headers) > 0 {
				req.Headers = make(map[string]string, len(headers))
				for _, h := range headers {
					k, v, ok := strings.Cut(h, "=")
					if !ok || strings.TrimSpace(k) == "" {
						return fmt.Errorf("invalid header %q, want key=value", h)
					}
					req.Headers[strings.TrimSpace(k)] = v
				}
			}

			ctx, cancel := commandContext(cmd, state)
			defer cancel()

			body, err := state.container.Client.Do(ctx, req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON request body")
	cmd.Flags().StringArrayVarP(&headers, "header", "H", nil, "Extra header as key=value, repeatable")

	return cmd
}
