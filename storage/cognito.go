//go:generate go run go.uber.org/mock/mockgen -source=cognito.go -destination=../mocks/mock_credential_source.go -package=mocks
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentity"

	apperrors "voice-lab/errors"
)

// defaultCredentialTTL is assumed when the identity service omits an
// expiration timestamp from its response.
const defaultCredentialTTL = time.Hour

// Credentials is a set of temporary AWS credentials with a known expiry.
type Credentials struct {
	AccessKeyID  string
	SecretKey    string
	SessionToken string
	Expiry       time.Time
}

// ICredentialSource produces fresh temporary credentials on demand.
type ICredentialSource interface {
	Fetch(ctx context.Context) (Credentials, error)
}

// CognitoClient is the subset of the Cognito Identity API used to obtain
// temporary credentials. *cognitoidentity.Client satisfies it.
type CognitoClient interface {
	GetId(ctx context.Context, params *cognitoidentity.GetIdInput, optFns ...func(*cognitoidentity.Options)) (*cognitoidentity.GetIdOutput, error)
	GetCredentialsForIdentity(ctx context.Context, params *cognitoidentity.GetCredentialsForIdentityInput, optFns ...func(*cognitoidentity.Options)) (*cognitoidentity.GetCredentialsForIdentityOutput, error)
}

// CognitoSource obtains short-lived credentials from a Cognito identity
// pool, using the unauthenticated guest flow.
type CognitoSource struct {
	client         CognitoClient
	identityPoolID string
}

func NewCognitoSource(client CognitoClient, identityPoolID string) *CognitoSource {
	return &CognitoSource{client: client, identityPoolID: identityPoolID}
}

// Fetch resolves a guest identity in the pool, then exchanges it for
// temporary keys.
func (c *CognitoSource) Fetch(ctx context.Context) (Credentials, error) {
	idOut, err := c.client.GetId(ctx, &cognitoidentity.GetIdInput{
		IdentityPoolId: aws.String(c.identityPoolID),
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("resolving cognito identity: %w", err)
	}

	credsOut, err := c.client.GetCredentialsForIdentity(ctx, &cognitoidentity.GetCredentialsForIdentityInput{
		IdentityId: idOut.IdentityId,
	})
	if err != nil {
		return Credentials{}, fmt.Errorf("fetching cognito credentials: %w", err)
	}
	got := credsOut.Credentials
	if got == nil || got.AccessKeyId == nil || got.SecretKey == nil {
		return Credentials{}, apperrors.ErrNoCredentials
	}

	creds := Credentials{
		AccessKeyID:  aws.ToString(got.AccessKeyId),
		SecretKey:    aws.ToString(got.SecretKey),
		SessionToken: aws.ToString(got.SessionToken),
	}
	if got.Expiration != nil {
		creds.Expiry = *got.Expiration
	} else {
		creds.Expiry = time.Now().Add(defaultCredentialTTL)
	}
	return creds, nil
}
