package commands

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/c12i/mpesa-go/pkg/mpesa"
	"github.com/c12i/mpesa-go/pkg/mpesaclient"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"
)

// Common static errors used throughout the commands package.
var (
	ErrConsumerKeyRequired = errors.New("consumer key is required (use --consumer-key or MPESA_CONSUMER_KEY)")
	ErrAmountRequired      = errors.New("amount must be greater than zero (use --amount)")
	ErrPhoneRequired       = errors.New("phone number is required (use --phone)")
	ErrShortCodeRequired   = errors.New("business short code is required (use --shortcode)")
)

// CreateClient builds an API client from the resolved CLI configuration.
// A missing consumer secret is prompted for interactively so it never has
// to appear in shell history.
func CreateClient() (mpesa.Client, error) {
	consumerKey := viper.GetString("consumer_key")
	if consumerKey == "" {
		return nil, ErrConsumerKeyRequired
	}

	consumerSecret := viper.GetString("consumer_secret")
	if consumerSecret == "" {
		fmt.Fprint(os.Stderr, "Consumer secret: ")
		byteSecret, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return nil, fmt.Errorf("failed to read consumer secret: %w", err)
		}
		consumerSecret = string(byteSecret)
		fmt.Fprintln(os.Stderr)
	}

	env, err := mpesa.ParseEnvironment(viper.GetString("environment"))
	if err != nil {
		return nil, err
	}

	config := &mpesa.Config{
		ConsumerKey:       consumerKey,
		ConsumerSecret:    consumerSecret,
		Environment:       env,
		InitiatorPassword: viper.GetString("initiator_password"),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = stderrLogger{}
	}

	return mpesaclient.New(config)
}

// stderrLogger writes transport debug lines to stderr so they never mix
// with the structured command output on stdout.
type stderrLogger struct{}

func (stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s", level, msg)
	for k, v := range fields {
		fmt.Fprintf(os.Stderr, " %s=%v", k, v)
	}
	fmt.Fprintln(os.Stderr)
}

func (l stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("DEBUG", msg, fields) }
func (l stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("INFO", msg, fields) }
func (l stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("WARN", msg, fields) }
func (l stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("ERROR", msg, fields) }
