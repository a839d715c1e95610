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

// NewC2BCommand creates the c2b command group
func NewC2BCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "c2b",
		Short: "Customer-to-business payments",
		Long:  "Register C2B callback URLs and simulate customer payments in the sandbox",
	}

	cmd.AddCommand(newC2BRegisterCommand())
	cmd.AddCommand(newC2BSimulateCommand())

	return cmd
}

func newC2BRegisterCommand() *cobra.Command {
	var (
		shortCode       string
		responseType    string
		confirmationURL string
		validationURL   string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register C2B callback URLs",
		Long:  "Register the confirmation and validation URLs for a shortcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := mpesa.NewC2BRegisterBuilder().
				ShortCode(shortCode).
				ResponseType(mpesa.ResponseType(responseType)).
				CheckedConfirmationURL(confirmationURL).
				CheckedValidationURL(validationURL)

			req, err := builder.Build()
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			resp, err := client.C2BRegister(ctx, req)
			if err != nil {
				return fmt.Errorf("registering C2B URLs: %w", err)
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
				fmt.Printf("✓ Callback URLs registered for shortcode %s\n", shortCode)
				if resp.ResponseDescription != "" {
					fmt.Println(resp.ResponseDescription)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&shortCode, "shortcode", "", "organization short code (required)")
	cmd.Flags().StringVar(&responseType, "response-type", string(mpesa.ResponseCompleted), "action when validation is unreachable (Completed, Cancelled)")
	cmd.Flags().StringVar(&confirmationURL, "confirmation-url", "", "URL that receives payment confirmations (required)")
	cmd.Flags().StringVar(&validationURL, "validation-url", "", "URL that validates payments before completion (required)")

	return cmd
}

func newC2BSimulateCommand() *cobra.Command {
	var (
		shortCode string
		amount    float64
		msisdn    string
		billRef   string
		buyGoods  bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a customer payment",
		Long:  "Simulate a C2B payment against a sandbox shortcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return ErrAmountRequired
			}

			builder := mpesa.NewC2BSimulateBuilder().
				ShortCode(shortCode).
				Amount(amount).
				Msisdn(msisdn).
				BillRefNumber(billRef)
			if buyGoods {
				builder.CommandID(mpesa.CommandCustomerBuyGoodsOnline)
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

			resp, err := client.C2BSimulate(ctx, req)
			if err != nil {
				return fmt.Errorf("simulating C2B payment: %w", err)
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

	cmd.Flags().StringVar(&shortCode, "shortcode", "", "sandbox short code receiving the payment (required)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to pay (required)")
	cmd.Flags().StringVar(&msisdn, "msisdn", "", "paying phone number in 2547XXXXXXXX format (required)")
	cmd.Flags().StringVar(&billRef, "bill-ref", "", "bill reference number for paybill payments")
	cmd.Flags().BoolVar(&buyGoods, "buy-goods", false, "simulate a till payment instead of a paybill")

	return cmd
}
