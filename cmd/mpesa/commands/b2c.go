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

// NewB2CCommand creates the b2c command
func NewB2CCommand() *cobra.Command {
	var (
		initiator  string
		command    string
		shortCode  string
		phone      string
		amount     float64
		remarks    string
		occasion   string
		resultURL  string
		timeoutURL string
	)

	cmd := &cobra.Command{
		Use:   "b2c",
		Short: "Send a business-to-customer payment",
		Long:  "Disburse funds from an organization shortcode to a customer phone number",
		RunE: func(cmd *cobra.Command, args []string) error {
			if phone == "" {
				return ErrPhoneRequired
			}
			if amount <= 0 {
				return ErrAmountRequired
			}

			builder := mpesa.NewB2CBuilder(initiator).
				PartyA(shortCode).
				PartyB(phone).
				Amount(amount).
				CheckedResultURL(resultURL).
				CheckedQueueTimeoutURL(timeoutURL)
			if remarks != "" {
				builder.Remarks(remarks)
			}
			if occasion != "" {
				builder.Occasion(occasion)
			}
			switch command {
			case "salary":
				builder.CommandID(mpesa.CommandSalaryPayment)
			case "business":
				builder.CommandID(mpesa.CommandBusinessPayment)
			case "promotion":
				builder.CommandID(mpesa.CommandPromotionPayment)
			default:
				return fmt.Errorf("unknown payment command %q (want salary, business, or promotion)", command)
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

			resp, err := client.B2C(ctx, req)
			if err != nil {
				return fmt.Errorf("sending B2C payment: %w", err)
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
				fmt.Printf("✓ Payment accepted for processing; the result arrives on %s\n", resultURL)
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
	cmd.Flags().StringVar(&command, "command", "business", "payment command (salary, business, promotion)")
	cmd.Flags().StringVar(&shortCode, "shortcode", "", "organization short code paying out (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone number in 2547XXXXXXXX format (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to send (required)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "comments sent with the payment")
	cmd.Flags().StringVar(&occasion, "occasion", "", "optional occasion note")
	cmd.Flags().StringVar(&resultURL, "result-url", "", "URL that receives the payment result (required)")
	cmd.Flags().StringVar(&timeoutURL, "timeout-url", "", "URL notified when the request expires in the queue (required)")

	return cmd
}
