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

var b2bCommands = map[string]mpesa.CommandID{
	"paybill":   mpesa.CommandBusinessPayBill,
	"buy-goods": mpesa.CommandBusinessBuyGoods,
	"disburse":  mpesa.CommandDisburseFundsToBusiness,
	"transfer":  mpesa.CommandBusinessToBusinessTransfer,
	"mmf":       mpesa.CommandBusinessTransferFromMMF,
}

// NewB2BCommand creates the b2b command
func NewB2BCommand() *cobra.Command {
	var (
		initiator    string
		command      string
		sender       string
		receiver     string
		receiverType int
		amount       float64
		accountRef   string
		remarks      string
		resultURL    string
		timeoutURL   string
	)

	cmd := &cobra.Command{
		Use:   "b2b",
		Short: "Send a business-to-business payment",
		Long:  "Move funds between organization shortcodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return ErrAmountRequired
			}
			commandID, ok := b2bCommands[command]
			if !ok {
				return fmt.Errorf("unknown payment command %q (want paybill, buy-goods, disburse, transfer, or mmf)", command)
			}

			builder := mpesa.NewB2BBuilder(initiator).
				CommandID(commandID).
				PartyA(sender).
				PartyB(receiver).
				ReceiverIdentifierType(mpesa.IdentifierType(receiverType)).
				Amount(amount).
				AccountReference(accountRef).
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

			resp, err := client.B2B(ctx, req)
			if err != nil {
				return fmt.Errorf("sending B2B payment: %w", err)
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
	cmd.Flags().StringVar(&command, "command", "paybill", "payment command (paybill, buy-goods, disburse, transfer, mmf)")
	cmd.Flags().StringVar(&sender, "sender", "", "sending organization short code (required)")
	cmd.Flags().StringVar(&receiver, "receiver", "", "receiving organization short code (required)")
	cmd.Flags().IntVar(&receiverType, "receiver-type", int(mpesa.IdentifierShortcode), "receiver identifier type (1 MSISDN, 2 till, 4 shortcode)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to send (required)")
	cmd.Flags().StringVar(&accountRef, "account-ref", "", "account reference for the receiving paybill (required)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "comments sent with the payment")
	cmd.Flags().StringVar(&resultURL, "result-url", "", "URL that receives the payment result (required)")
	cmd.Flags().StringVar(&timeoutURL, "timeout-url", "", "URL notified when the request expires in the queue (required)")

	return cmd
}
