package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/c12i/mpesa-go/pkg/mpesa"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// NewBillManagerCommand creates the billmanager command group
func NewBillManagerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "billmanager",
		Aliases: []string{"bill-manager", "bm"},
		Short:   "Bill manager invoicing",
		Long:    "Onboard billers, send invoices, reconcile payments, and cancel invoices",
	}

	cmd.AddCommand(newBillManagerOnboardCommand())
	cmd.AddCommand(newBillManagerInvoiceCommand())
	cmd.AddCommand(newBillManagerReconcileCommand())
	cmd.AddCommand(newBillManagerCancelCommand())

	return cmd
}

func newBillManagerOnboardCommand() *cobra.Command {
	var (
		shortCode   string
		email       string
		logo        string
		contact     string
		reminders   bool
		callbackURL string
	)

	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Onboard a biller",
		Long:  "Register a shortcode as a bill manager biller",
		RunE: func(cmd *cobra.Command, args []string) error {
			builder := mpesa.NewOnboardBuilder().
				ShortCode(shortCode).
				Email(email).
				Logo(logo).
				OfficialContact(contact).
				CheckedCallbackURL(callbackURL)
			if reminders {
				builder.SendReminders(mpesa.RemindersEnabled)
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

			resp, err := client.OnboardBiller(ctx, req)
			if err != nil {
				return fmt.Errorf("onboarding biller: %w", err)
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
				fmt.Printf("✓ Biller %s onboarded\n", shortCode)
				fmt.Println()
				table := tablewriter.NewWriter(os.Stdout)
				table.Header("Property", "Value")
				_ = table.Append("App Key", resp.AppKey)
				_ = table.Append("Response Message", resp.ResponseMessage)
				if err := table.Render(); err != nil {
					return fmt.Errorf("failed to render table: %w", err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&shortCode, "shortcode", "", "organization short code to onboard (required)")
	cmd.Flags().StringVar(&email, "email", "", "official biller email (required)")
	cmd.Flags().StringVar(&logo, "logo", "", "logo image URL embedded in invoices (required)")
	cmd.Flags().StringVar(&contact, "contact", "", "official contact phone number (required)")
	cmd.Flags().BoolVar(&reminders, "reminders", false, "send payment reminders to customers")
	cmd.Flags().StringVar(&callbackURL, "callback-url", "", "URL that receives payment notifications (required)")

	return cmd
}

func newBillManagerInvoiceCommand() *cobra.Command {
	var (
		amount     float64
		accountRef string
		fullName   string
		period     string
		phone      string
		dueDate    string
		externalID string
		name       string
	)

	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Send a single invoice",
		Long:  "Send an e-invoice to a customer's phone",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return ErrAmountRequired
			}
			if phone == "" {
				return ErrPhoneRequired
			}

			builder := mpesa.NewInvoiceBuilder().
				Amount(amount).
				AccountReference(accountRef).
				BilledFullName(fullName).
				BilledPeriod(period).
				BilledPhoneNumber(phone).
				ExternalReference(externalID).
				InvoiceName(name)
			if dueDate != "" {
				due, err := time.Parse("2006-01-02", dueDate)
				if err != nil {
					return fmt.Errorf("invalid due date %q (want YYYY-MM-DD): %w", dueDate, err)
				}
				builder.DueDate(due)
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

			resp, err := client.SendSingleInvoice(ctx, req)
			if err != nil {
				return fmt.Errorf("sending invoice: %w", err)
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
				fmt.Printf("✓ Invoice %s sent to %s\n", externalID, phone)
				if resp.StatusMessage != "" {
					fmt.Println(resp.StatusMessage)
				}
			}

			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "invoice amount (required)")
	cmd.Flags().StringVar(&accountRef, "account-ref", "", "account reference billed against (required)")
	cmd.Flags().StringVar(&fullName, "billed-name", "", "customer's full name (required)")
	cmd.Flags().StringVar(&period, "billed-period", "", "billing period, e.g. \"August 2026\" (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "customer phone number in 2547XXXXXXXX format (required)")
	cmd.Flags().StringVar(&dueDate, "due-date", "", "payment due date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&externalID, "external-ref", "", "unique invoice reference (required)")
	cmd.Flags().StringVar(&name, "invoice-name", "", "descriptive invoice name (required)")

	return cmd
}

func newBillManagerReconcileCommand() *cobra.Command {
	var (
		accountRef    string
		dateCreated   string
		msisdn        string
		paidAmount    float64
		shortCode     string
		transactionID string
	)

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile an external payment",
		Long:  "Record a payment received outside bill manager against its invoice",
		RunE: func(cmd *cobra.Command, args []string) error {
			if paidAmount <= 0 {
				return ErrAmountRequired
			}

			builder := mpesa.NewReconciliationBuilder().
				AccountReference(accountRef).
				Msisdn(msisdn).
				PaidAmount(paidAmount).
				ShortCode(shortCode).
				TransactionID(transactionID)
			if dateCreated != "" {
				created, err := time.Parse("2006-01-02", dateCreated)
				if err != nil {
					return fmt.Errorf("invalid creation date %q (want YYYY-MM-DD): %w", dateCreated, err)
				}
				builder.DateCreated(created)
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

			resp, err := client.ReconcileTransaction(ctx, req)
			if err != nil {
				return fmt.Errorf("reconciling payment: %w", err)
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
				fmt.Printf("✓ Payment %s reconciled\n", transactionID)
				if resp.ResponseMessage != "" {
					fmt.Println(resp.ResponseMessage)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&accountRef, "account-ref", "", "account reference on the invoice (required)")
	cmd.Flags().StringVar(&dateCreated, "date-created", "", "payment date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&msisdn, "msisdn", "", "paying phone number in 2547XXXXXXXX format (required)")
	cmd.Flags().Float64Var(&paidAmount, "paid-amount", 0, "amount paid (required)")
	cmd.Flags().StringVar(&shortCode, "shortcode", "", "biller short code (required)")
	cmd.Flags().StringVar(&transactionID, "transaction-id", "", "M-Pesa transaction receipt (required)")

	return cmd
}

func newBillManagerCancelCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancel EXTERNAL_REFERENCE...",
		Short: "Cancel invoices",
		Long:  "Cancel previously sent invoices by external reference; several references go out as one bulk cancellation",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var (
				status  string
				message string
			)

			if len(args) == 1 {
				req, err := mpesa.NewCancelInvoiceRequest(args[0])
				if err != nil {
					return err
				}

				resp, err := client.CancelInvoice(ctx, req)
				if err != nil {
					return fmt.Errorf("cancelling invoice: %w", err)
				}
				status, message = resp.StatusMessage, resp.ResponseMessage
			} else {
				req, err := mpesa.NewBulkCancelInvoiceRequest(args...)
				if err != nil {
					return err
				}

				resp, err := client.CancelBulkInvoices(ctx, req)
				if err != nil {
					return fmt.Errorf("cancelling invoices: %w", err)
				}
				status, message = resp.StatusMessage, resp.ResponseMessage
			}

			output := viper.GetString("output")
			switch output {
			case OutputFormatJSON:
				encoder := json.NewEncoder(os.Stdout)
				encoder.SetIndent("", "  ")
				return encoder.Encode(map[string]string{"statusMessage": status, "responseMessage": message})
			case OutputFormatYAML:
				encoder := yaml.NewEncoder(os.Stdout)
				return encoder.Encode(map[string]string{"statusMessage": status, "responseMessage": message})
			default:
				fmt.Printf("✓ Cancelled %d invoice(s)\n", len(args))
				if status != "" {
					fmt.Println(status)
				}
			}

			return nil
		},
	}

	return cmd
}
