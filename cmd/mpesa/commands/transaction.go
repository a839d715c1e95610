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

// NewTransactionCommand creates the transaction command group
func NewTransactionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transaction",
		Short: "Transaction status and reversal",
		Long:  "Query the status of a transaction or reverse a completed one",
	}

	cmd.AddCommand(newTransactionStatusCommand())
	cmd.AddCommand(newTransactionReverseCommand())

	return cmd
}

func newTransactionStatusCommand() *cobra.Command {
	var (
		initiator      string
		transactionID  string
		originatorID   string
		shortCode      string
		identifierType int
		remarks        string
		resultURL      string
		timeoutURL     string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Query a transaction's status",
		Long:  "Look up a transaction by its M-Pesa receipt or originator conversation ID; the outcome arrives on the result URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := mpesa.NewTransactionStatusBuilder(initiator).
				TransactionID(transactionID).
				OriginatorConversationID(originatorID).
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

			resp, err := client.TransactionStatus(ctx, req)
			if err != nil {
				return fmt.Errorf("querying transaction status: %w", err)
			}

			return renderCoreResponse(&resp.CoreResponse)
		},
	}

	cmd.Flags().StringVar(&initiator, "initiator", "", "initiator name (required)")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "M-Pesa transaction receipt, e.g. OEI2AK4Q16")
	cmd.Flags().StringVar(&originatorID, "originator-conversation-id", "", "originator conversation ID, if the receipt is unknown")
	cmd.Flags().StringVar(&shortCode, "shortcode", "", "organization short code the transaction belongs to (required)")
	cmd.Flags().IntVar(&identifierType, "identifier-type", int(mpesa.IdentifierShortcode), "party identifier type (1 MSISDN, 2 till, 4 shortcode)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "comments sent with the query")
	cmd.Flags().StringVar(&resultURL, "result-url", "", "URL that receives the status result (required)")
	cmd.Flags().StringVar(&timeoutURL, "timeout-url", "", "URL notified when the request expires in the queue (required)")

	return cmd
}

func newTransactionReverseCommand() *cobra.Command {
	var (
		initiator     string
		transactionID string
		amount        float64
		receiver      string
		receiverType  int
		remarks       string
		resultURL     string
		timeoutURL    string
	)

	cmd := &cobra.Command{
		Use:   "reverse",
		Short: "Reverse a completed transaction",
		Long:  "Request reversal of a completed transaction back to the payer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return ErrAmountRequired
			}

			builder := mpesa.NewTransactionReversalBuilder(initiator).
				TransactionID(transactionID).
				Amount(amount).
				ReceiverParty(receiver).
				ReceiverIdentifierType(mpesa.IdentifierType(receiverType)).
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

			resp, err := client.TransactionReversal(ctx, req)
			if err != nil {
				return fmt.Errorf("reversing transaction: %w", err)
			}

			return renderCoreResponse(&resp.CoreResponse)
		},
	}

	cmd.Flags().StringVar(&initiator, "initiator", "", "initiator name (required)")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "M-Pesa transaction receipt to reverse (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to reverse (required)")
	cmd.Flags().StringVar(&receiver, "receiver", "", "organization short code that received the funds (required)")
	cmd.Flags().IntVar(&receiverType, "receiver-type", int(mpesa.IdentifierShortcode), "receiver identifier type (1 MSISDN, 2 till, 4 shortcode)")
	cmd.Flags().StringVar(&remarks, "remarks", "", "comments sent with the reversal")
	cmd.Flags().StringVar(&resultURL, "result-url", "", "URL that receives the reversal result (required)")
	cmd.Flags().StringVar(&timeoutURL, "timeout-url", "", "URL notified when the request expires in the queue (required)")

	return cmd
}

// renderCoreResponse prints the standard asynchronous acknowledgement in the
// configured output format.
func renderCoreResponse(resp *mpesa.CoreResponse) error {
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
}
