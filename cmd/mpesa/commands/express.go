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

// NewExpressCommand creates the express command group
func NewExpressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "express",
		Short: "M-Pesa Express (STK push)",
		Long:  "Initiate and query customer-facing STK push payments",
	}

	cmd.AddCommand(newExpressPushCommand())
	cmd.AddCommand(newExpressQueryCommand())

	return cmd
}

func newExpressPushCommand() *cobra.Command {
	var (
		shortCode   string
		passkey     string
		amount      float64
		phone       string
		accountRef  string
		description string
		callbackURL string
		buyGoods    bool
	)

	cmd := &cobra.Command{
		Use:   "push",
		Short: "Initiate an STK push",
		Long:  "Send a payment prompt to the customer's phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shortCode == "" {
				return ErrShortCodeRequired
			}
			if phone == "" {
				return ErrPhoneRequired
			}
			if amount <= 0 {
				return ErrAmountRequired
			}

			builder := mpesa.NewExpressBuilder(shortCode).
				Amount(amount).
				PartyA(phone).
				PartyB(shortCode).
				PhoneNumber(phone).
				AccountReference(accountRef).
				TransactionDesc(description).
				CheckedCallbackURL(callbackURL)
			if passkey != "" {
				builder.Passkey(passkey)
			}
			if buyGoods {
				builder.TransactionType(mpesa.CommandCustomerBuyGoodsOnline)
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

			resp, err := client.ExpressPush(ctx, req)
			if err != nil {
				return fmt.Errorf("initiating STK push: %w", err)
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
				fmt.Printf("✓ STK push sent to %s\n", phone)
				fmt.Printf("Query the outcome with: mpesa express query --shortcode %s --checkout-request-id %s\n",
					shortCode, resp.CheckoutRequestID)
				fmt.Println()
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("Merchant Request ID", resp.MerchantRequestID)
				_ = table.Append("Checkout Request ID", resp.CheckoutRequestID)
				_ = table.Append("Response Description", resp.ResponseDescription)
				_ = table.Append("Customer Message", resp.CustomerMessage)
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&shortCode, "shortcode", "", "business short code (required)")
	cmd.Flags().StringVar(&passkey, "passkey", "", "Lipa na M-Pesa passkey (defaults to the sandbox passkey)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to charge (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone number in 2547XXXXXXXX format (required)")
	cmd.Flags().StringVar(&accountRef, "account-ref", "", "account reference shown to the customer (required)")
	cmd.Flags().StringVar(&description, "description", "", "transaction description")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "URL that receives the payment result (required)")
	cmd.Flags().BoolVar(&buyGoods, "buy-goods", false, "charge a till number instead of a paybill")

	return cmd
}

func newExpressQueryCommand() *cobra.Command {
	var (
		shortCode         string
		passkey           string
		checkoutRequestID string
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query an STK push outcome",
		Long:  "Look up the payment result of an earlier STK push by its checkout request ID",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shortCode == "" {
				return ErrShortCodeRequired
			}

			builder := mpesa.NewExpressQueryBuilder(shortCode).
				CheckoutRequestID(checkoutRequestID)
			if passkey != "" {
				builder.Passkey(passkey)
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

			resp, err := client.ExpressQuery(ctx, req)
			if err != nil {
				return fmt.Errorf("querying STK push: %w", err)
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
				_ = table.Append("Merchant Request ID", resp.MerchantRequestID)
				_ = table.Append("Checkout Request ID", resp.CheckoutRequestID)
				_ = table.Append("Result Code", resp.ResultCode)
				_ = table.Append("Result Description", resp.ResultDesc)
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&shortCode, "shortcode", "", "business short code (required)")
	cmd.Flags().StringVar(&passkey, "passkey", "", "Lipa na M-Pesa passkey (defaults to the sandbox passkey)")
	cmd.Flags().StringVar(&checkoutRequestID, "checkout-request-id", "", "checkout request ID from the push response (required)")

	return cmd
}
