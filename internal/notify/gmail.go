package notify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/mohit-756/interview-bot/internal/logger"
)

// GmailSender sends mail through the Gmail API as the authorised account
type GmailSender struct {
	service *gmail.Service
	from    string
	log     *zap.Logger
}

// NewGmailSender builds a sender from an OAuth client credentials file and a
// previously authorised token file (see AuthorizeGmail).
func NewGmailSender(ctx context.Context, credentialsPath, tokenPath, from string, log *zap.Logger) (*GmailSender, error) {
	cfg, err := oauthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read gmail token: %w", err)
	}

	srv, err := gmail.NewService(ctx, option.WithHTTPClient(cfg.Client(ctx, tok)))
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail client: %w", err)
	}
	return newGmailSender(srv, from, log), nil
}

func newGmailSender(srv *gmail.Service, from string, log *zap.Logger) *GmailSender {
	log = logger.OrNop(log)
	if from == "" {
		from = "me"
	}
	return &GmailSender{service: srv, from: from, log: log}
}

// Send delivers the message through users.messages.send
func (g *GmailSender) Send(ctx context.Context, to, subject, body string) bool {
	raw := buildMessage(g.from, to, subject, body, time.Now())
	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}

	if _, err := g.service.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		g.log.Debug("gmail send failed", zap.String("to", to), zap.Error(err))
		return false
	}
	return true
}

// AuthorizeGmail runs the interactive consent flow: it prints the consent
// URL to out, reads the authorization code from in and saves the token.
func AuthorizeGmail(ctx context.Context, credentialsPath, tokenPath string, in io.Reader, out io.Writer) error {
	cfg, err := oauthConfig(credentialsPath)
	if err != nil {
		return err
	}

	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintf(out, "Go to the following link in your browser then type the authorization code:\n%v\n", authURL)

	var code string
	if _, err := fmt.Fscan(in, &code); err != nil {
		return fmt.Errorf("unable to read authorization code: %w", err)
	}

	tok, err := cfg.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return saveToken(tokenPath, tok)
}

func oauthConfig(credentialsPath string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}
	cfg, err := google.ConfigFromJSON(b, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return cfg, nil
}

// tokenFromFile retrieves a token from a local file
func tokenFromFile(file string) (*oauth2.Token, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	tok := &oauth2.Token{}
	err = json.NewDecoder(f).Decode(tok)
	return tok, err
}

// saveToken saves a token to a file path
func saveToken(path string, token *oauth2.Token) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}
