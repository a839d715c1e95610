package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/c12i/mpesa-go/pkg/mpesa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewBalanceCommand creates the balance command
func NewBalanceCommand() *cobra.Command {
	var (
		initiator      string
		shortCode      string
		identifierType int
		remarks        string
		resultURL      string
		timeoutURL     string
	)

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Query an account balance",
		Long:  "Request the working account balance of an organization shortcode; the figures arrive on the result URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := mpesa.NewAccountBalanceBuilder(initiator).
				PartyA(shortCode).
				IdentifierType(mpesa.IdentifierType(identifierType)).
				CheckedResultURL(resultURL).
				CheckedQueueTimeoutURL(timeoutURL)
			if remarks != "" {
				builder.Remarks(remarks)
			}

			req, err := builder.Build()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			resp, err := client.AccountBalance(ctx, req)
			if err != nil {
				return fmt.Errorf("querying account balance: %w", err)
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(resp)
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)
				return encoder.Encode(resp)
			default:
				fmt.Printf("✓ Balance query accepted; the figures arrive on %s\n", resultURL)
				fmt.Println()
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Originator Conversation ID", resp.OriginatorConversationID)
				_ = table.Append("Conversation ID", resp.ConversationID)
				_ = table.Append("Response Description", resp.ResponseDescription)
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&initiator, "initiator", "", "initiator name (required)")
	cmd.Flags().StringVar(&shortCode, "shortcode", "", "organization short code to query (required)")
	cmd.Flags().IntVar(&identifierType, "identifier-type", int(mpesa.IdentifierShortcode), "party identifier type (1 MSISDN, 2 till, 4 shortcode)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "comments sent with the query")
	cmd.Flags().StringVar(&resultURL, "result-url", "", "URL that receives the balance result (required)")
	cmd.Flags().StringVar(&timeoutURL, "timeout-url", "", "URL notified when the request expires in the queue (required)")

	return cmd
}
