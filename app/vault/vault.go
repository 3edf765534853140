package vault

import (
	"context"
	"errors"
	"fmt"
	"os"

	vaultapi "github.com/hashicorp/vault/api"
)

// ErrClientInit indicates failure to initialize the Vault API client.
var ErrClientInit = errors.New("vault client initialization failed")

type Client struct {
	api *vaultapi.Client
}

// NewClient builds a Vault client for the given address. An empty token
// falls back to VAULT_TOKEN from the environment.
func NewClient(address, token string) (*Client, error) {
	apiCfg := vaultapi.DefaultConfig()
	if address != "" {
		apiCfg.Address = address
	}
	api, err := vaultapi.NewClient(apiCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientInit, err)
	}
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	if token != "" {
		api.SetToken(token)
	}
	return &Client{api: api}, nil
}

// ReadKV reads a secret at the given logical path. KV v2 responses nest the
// payload under "data"; that level is unwrapped transparently.
func (c *Client) ReadKV(ctx context.Context, path string) (map[string]any, error) {
	secret, err := c.api.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no data found at path: %s", path)
	}
	if nested, ok := secret.Data["data"].(map[string]any); ok {
		return nested, nil
	}
	return secret.Data, nil
}
