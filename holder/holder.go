package holder

import (
	"encoding/hex"
	"github.com/coronacheck/hc1dump/cborvalue"
	"github.com/coronacheck/hc1dump/common"
	"github.com/coronacheck/hc1dump/printer"
	"github.com/rs/zerolog"
	"io"
)

type Configuration struct {
	// Diagnostic renders skipped values in CBOR diagnostic notation
	Diagnostic bool

	Logger zerolog.Logger
}

type Holder struct {
	config *Configuration
}

// Credential is the unverified content of a HC1 QR code.
type Credential struct {
	COSE   *common.Sign1
	Claims cborvalue.Value
}

func New(config *Configuration) *Holder {
	if config == nil {
		config = &Configuration{Logger: zerolog.Nop()}
	}

	return &Holder{
		config: config,
	}
}

func (h *Holder) ReadQREncoded(proofPrefixed []byte) (*Credential, error) {
	h.config.Logger.Debug().Int("length", len(proofPrefixed)).Msg("Reading QR encoded credential")

	sign1, err := common.UnmarshalQREncoded(proofPrefixed)
	if err != nil {
		return nil, err
	}
	h.logSign1(sign1)

	claims, err := sign1.ReadClaims()
	if err != nil {
		return nil, err
	}
	h.logClaims(claims)

	return &Credential{
		COSE:   sign1,
		Claims: claims,
	}, nil
}

// Dump reads the credential and prints its claims to w. Nothing is written
// unless the whole credential decodes.
func (h *Holder) Dump(proofPrefixed []byte, w io.Writer) error {
	cred, err := h.ReadQREncoded(proofPrefixed)
	if err != nil {
		return err
	}

	err = printer.New(w, h.config.Diagnostic).Print(cred.Claims)
	if err != nil {
		return common.NewDecodeError(common.KindIO, err, "Could not print claims")
	}

	return nil
}

func (h *Holder) logSign1(sign1 *common.Sign1) {
	logger := h.config.Logger
	if logger.GetLevel() > zerolog.DebugLevel {
		return
	}

	event := logger.Debug().
		Bool("tagged", sign1.Tagged).
		Int("inflatedSize", sign1.InflatedSize).
		Int("payloadSize", len(sign1.Payload))

	if alg, ok := sign1.Algorithm(); ok {
		event = event.Str("alg", alg.String())
	}
	if kid, ok := sign1.KeyID(); ok && kid.Kind == cborvalue.KindBytes {
		event = event.Str("kid", hex.EncodeToString(kid.Bytes))
	}

	event.Msg("Parsed COSE_Sign1 message, signature not verified")
}

func (h *Holder) logClaims(claims cborvalue.Value) {
	event := h.config.Logger.Debug().Str("kind", claims.Kind.String())

	if iss, ok := claims.Lookup(common.CLAIM_ISSUER); ok && iss.IsScalar() {
		event = event.Str("issuer", iss.String())
	}
	if iat, ok := claims.Lookup(common.CLAIM_ISSUED_AT); ok && iat.IsScalar() {
		event = event.Str("issuedAt", iat.String())
	}
	if exp, ok := claims.Lookup(common.CLAIM_EXPIRATION_TIME); ok && exp.IsScalar() {
		event = event.Str("expirationTime", exp.String())
	}
	_, hasHCert := claims.Lookup(common.CLAIM_HCERT)

	event.Bool("hcert", hasHCert).Msg("Decoded CWT claims")
}
