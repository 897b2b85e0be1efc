package auth

import (
	"context"
	"fmt"
	"time"

	"uprala/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

type CognitoClient interface {
	InitiateAuth(ctx context.Context, params *cognitoidentityprovider.InitiateAuthInput, optFns ...func(*cognitoidentityprovider.Options)) (*cognitoidentityprovider.InitiateAuthOutput, error)
}

// KeySetSource is satisfied by *jwk.Cache.
type KeySetSource interface {
	Lookup(ctx context.Context, u string) (jwk.Set, error)
}

// CognitoProvider delegates admin credentials to a Cognito user pool and
// verifies the pool's access tokens against its published JWKS.
type CognitoProvider struct {
	client    CognitoClient
	keys      KeySetSource
	clientID  string
	issuerURL string
}

func NewCognitoProvider(client CognitoClient, keys KeySetSource, clientID, issuerURL string) *CognitoProvider {
	return &CognitoProvider{
		client:    client,
		keys:      keys,
		clientID:  clientID,
		issuerURL: issuerURL,
	}
}

func JWKSURL(issuerURL string) string {
	return fmt.Sprintf("%s/.well-known/jwks.json", issuerURL)
}

func (p *CognitoProvider) Login(ctx context.Context, username, password string) (*types.AdminToken, error) {

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": username,
			"PASSWORD": password,
		},
	}

	resp, err := p.client.InitiateAuth(ctx, input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidCredentials, err)
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		return nil, types.ErrInvalidCredentials
	}

	expiresIn := time.Duration(resp.AuthenticationResult.ExpiresIn) * time.Second

	return &types.AdminToken{
		Token:     aws.ToString(resp.AuthenticationResult.AccessToken),
		ExpiresAt: time.Now().Add(expiresIn),
	}, nil
}

func (p *CognitoProvider) Verify(ctx context.Context, token string) (*types.AdminClaims, error) {

	set, err := p.keys.Lookup(ctx, JWKSURL(p.issuerURL))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	parsed, err := jwt.Parse(
		[]byte(token),
		jwt.WithKeySet(set),
		jwt.WithValidate(true),
		jwt.WithIssuer(p.issuerURL),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidToken, err)
	}

	return claimsFromToken(parsed)
}
