package gdocs

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"md2gdocs/config"
	"md2gdocs/debug"
)

var scopes = []string{docs.DocumentsScope, drive.DriveFileScope}

// Prompt is where the interactive OAuth flow asks for an authorization code.
type Prompt struct {
	In  io.Reader
	Out io.Writer
}

func stdPrompt() Prompt {
	return Prompt{In: os.Stdin, Out: os.Stderr}
}

// HTTPClient returns an authorized client for the auth mode in cfg.
func HTTPClient(ctx context.Context, cfg *config.Config, prompt Prompt) (*http.Client, error) {
	switch cfg.AuthMode {
	case config.AuthServiceAccount:
		return ServiceAccountClient(ctx, cfg.CredentialsPath)
	case config.AuthOAuth, "":
		return SetupOAuth(ctx, cfg.CredentialsPath, cfg.TokenPath, prompt)
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}
}

// ServiceAccountClient authorizes with a service account key file.
func ServiceAccountClient(ctx context.Context, keyPath string) (*http.Client, error) {
	debug.Log("Reading service account key from: %s", keyPath)

	b, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key: %w", err)
	}

	jwtCfg, err := google.JWTConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}
	return jwtCfg.Client(ctx), nil
}

// SetupOAuth runs the installed-app flow, reusing the token cached at
// tokenPath when there is one.
func SetupOAuth(ctx context.Context, credentialsPath, tokenPath string, prompt Prompt) (*http.Client, error) {
	debug.Log("Reading credentials from: %s", credentialsPath)

	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials: %w", err)
	}

	oauthCfg, err := google.ConfigFromJSON(b, scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}

	debug.Log("Checking for existing token at: %s", tokenPath)
	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, err
	}

	if tok == nil {
		debug.Log("No token found, starting OAuth flow")
		tok, err = tokenFromWeb(ctx, oauthCfg, prompt)
		if err != nil {
			return nil, err
		}
		if err := saveToken(tokenPath, tok); err != nil {
			return nil, err
		}
	} else {
		debug.Log("Using existing token")
	}

	return oauthCfg.Client(ctx, tok), nil
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read token file: %w", err)
	}
	defer f.Close()

	var tok oauth2.Token
	if err := json.NewDecoder(f).Decode(&tok); err != nil {
		return nil, fmt.Errorf("unable to decode token file: %w", err)
	}
	return &tok, nil
}

func tokenFromWeb(ctx context.Context, cfg *oauth2.Config, prompt Prompt) (*oauth2.Token, error) {
	authURL := cfg.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Fprintln(prompt.Out, "Authorize this application by visiting the URL below:")
	fmt.Fprintln(prompt.Out, authURL)
	fmt.Fprintln(prompt.Out)
	fmt.Fprintln(prompt.Out, "After approving, paste the authorization code and press Enter:")

	openBrowser(authURL)

	code, err := bufio.NewReader(prompt.In).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && code != "") {
		return nil, fmt.Errorf("unable to read authorization code: %w", err)
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("empty authorization code")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token from web: %w", err)
	}
	return tok, nil
}

func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	default:
		return
	}
	_ = cmd.Start()
}

func saveToken(path string, tok *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(tok); err != nil {
		return fmt.Errorf("unable to write oauth token: %w", err)
	}

	debug.Log("Saved OAuth token to: %s", path)
	return nil
}
