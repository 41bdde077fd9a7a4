// Package guard enforces per-method authorization rules on gRPC servers.
//
// A Guard binds the pure evaluators in package authz to the transport: caller
// identity comes from request metadata, admin claims from a verified bearer
// token, and resource ownership from a store lookup. Denials become
// PermissionDenied statuses carrying the decision reason code. Absent facts
// (no identity headers, no such resource) evaluate as denies; only credential
// and infrastructure faults surface as errors.
package guard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/louisbranch/chatguard/authz"
	"github.com/louisbranch/chatguard/grpcmeta"
	apperrors "github.com/louisbranch/chatguard/internal/platform/errors"
	"github.com/louisbranch/chatguard/internal/platform/requestctx"
	"github.com/louisbranch/chatguard/internal/platform/timeouts"
	"github.com/louisbranch/chatguard/store"
	"github.com/louisbranch/chatguard/token"
)

// ReasonDenyUnlistedMethod reports a request for a method without a rule.
const ReasonDenyUnlistedMethod = "DENY_UNLISTED_METHOD"

// Rule declares the policy protecting one RPC method.
type Rule struct {
	// Policy names the evaluator to run. The role a rule demands is part of
	// the policy; there is no separate role field.
	Policy authz.Policy
	// Resource selects the resource family consulted by ownership rules.
	// Ignored by other policies.
	Resource authz.ResourceKind
}

// Ruleset maps fully qualified gRPC method names
// (e.g. "/chat.v1.SessionService/GetSession") to their rules.
type Ruleset map[string]Rule

// Guard evaluates authorization rules for incoming requests.
//
// The zero value denies everything: no rules means every method is unlisted.
// Call Validate at construction time so rule mistakes surface at startup
// instead of as runtime internal errors.
type Guard struct {
	// Rules holds the per-method rules.
	Rules Ruleset
	// Resources resolves resource ownership. Required when any rule uses
	// PolicyResourceOwner.
	Resources store.Store
	// Tokens verifies bearer tokens for the admin claim fallback. When nil,
	// admin rules rely on the identity role alone.
	Tokens *token.Config
	// AllowUnlisted lets methods without a rule through instead of denying
	// them. Leave false on servers where every method is guarded.
	AllowUnlisted bool
	// Locale selects the language of client-facing denial messages.
	// Empty selects the base locale.
	Locale string
}

// Validate checks the guard wiring so interceptors do not need per-request
// configuration guards.
func (g *Guard) Validate() error {
	var faults []string
	for method, rule := range g.Rules {
		canonical, ok := authz.NormalizePolicy(string(rule.Policy))
		if !ok || canonical != rule.Policy {
			faults = append(faults, fmt.Sprintf("%s: unknown policy %q", method, rule.Policy))
			continue
		}
		if rule.Policy == authz.PolicyResourceOwner {
			if rule.Resource == authz.ResourceKindUnspecified {
				faults = append(faults, fmt.Sprintf("%s: ownership rule missing resource kind", method))
			}
			if g.Resources == nil {
				faults = append(faults, fmt.Sprintf("%s: ownership rule requires a resource store", method))
			}
		}
	}
	if len(faults) > 0 {
		sort.Strings(faults)
		return fmt.Errorf("guard misconfigured: %s", strings.Join(faults, "; "))
	}
	return nil
}

// Check runs the rule against the request context and message. The decision
// reports allow or deny; the error reports resolution faults (an unreadable
// bearer token, a failing store) that prevented evaluation entirely.
func (g *Guard) Check(ctx context.Context, rule Rule, req any) (authz.Decision, error) {
	_, decision, err := g.evaluate(ctx, rule, req)
	return decision, err
}

// Require evaluates the rule and returns nil only on allow. Denials become
// PermissionDenied statuses carrying the policy and reason code; resolution
// faults keep their own codes (Unauthenticated for bad credentials, Internal
// for store failures).
func (g *Guard) Require(ctx context.Context, rule Rule, req any) error {
	decision, err := g.Check(ctx, rule, req)
	if err != nil {
		return g.resolutionStatus(err)
	}
	if !decision.Allowed {
		return g.denyStatus(rule, decision)
	}
	return nil
}

// Authorize guards one inbound call. It looks up the method's rule, evaluates
// it, and returns a context carrying the resolved identity for the handler.
// Errors follow Require semantics.
func (g *Guard) Authorize(ctx context.Context, fullMethod string, req any) (context.Context, error) {
	rule, ok := g.Rules[fullMethod]
	if !ok {
		if g.AllowUnlisted {
			return ctx, nil
		}
		decision := authz.Decision{ReasonCode: ReasonDenyUnlistedMethod}
		g.logDeny(ctx, fullMethod, Rule{}, decision)
		return ctx, g.denyStatus(Rule{}, decision)
	}
	identity, decision, err := g.evaluate(ctx, rule, req)
	if err != nil {
		return ctx, g.resolutionStatus(err)
	}
	if !decision.Allowed {
		g.logDeny(ctx, fullMethod, rule, decision)
		return ctx, g.denyStatus(rule, decision)
	}
	return requestctx.WithIdentity(ctx, identity), nil
}

func (g *Guard) evaluate(ctx context.Context, rule Rule, req any) (authz.Identity, authz.Decision, error) {
	identity := grpcmeta.IdentityFromContext(ctx)
	claims, err := g.resolveClaims(ctx, rule)
	if err != nil {
		return identity, authz.Decision{}, err
	}
	resource, err := g.resolveResource(ctx, rule, req)
	if err != nil {
		return identity, authz.Decision{}, err
	}
	decision := authz.Evaluate(rule.Policy, authz.Input{
		Identity: identity,
		Claims:   claims,
		Resource: resource,
	})
	return identity, decision, nil
}

// resolveClaims verifies the bearer token when the rule can consume its
// claims. A missing token is not an error; evaluators read missing claims as
// denial grounds. A token that is present but unverifiable is a credential
// fault and stops evaluation.
func (g *Guard) resolveClaims(ctx context.Context, rule Rule) (authz.Claims, error) {
	if rule.Policy != authz.PolicyAdmin || g.Tokens == nil {
		return authz.Claims{}, nil
	}
	bearer := grpcmeta.BearerTokenFromContext(ctx)
	if bearer == "" {
		return authz.Claims{}, nil
	}
	verified, err := token.VerifyAccess(bearer, *g.Tokens)
	if err != nil {
		return authz.Claims{}, err
	}
	return verified.Claims(), nil
}

// resolveResource loads the target resource for ownership rules. A request
// without a resource ID and a lookup miss both resolve to the zero resource,
// which denies ownership downstream.
func (g *Guard) resolveResource(ctx context.Context, rule Rule, req any) (authz.Resource, error) {
	if rule.Policy != authz.PolicyResourceOwner {
		return authz.Resource{}, nil
	}
	id := resourceIDFromRequest(req, rule.Resource)
	if id == "" {
		return authz.Resource{}, nil
	}
	if g.Resources == nil {
		return authz.Resource{}, errors.New("resource store is not configured")
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeouts.StoreQuery)
	defer cancel()
	resource, err := g.Resources.GetResource(lookupCtx, rule.Resource, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return authz.Resource{}, nil
		}
		return authz.Resource{}, fmt.Errorf("load resource: %w", err)
	}
	return resource, nil
}

func (g *Guard) denyStatus(rule Rule, decision authz.Decision) error {
	return apperrors.HandleError(apperrors.WithMetadata(
		apperrors.CodeAccessDenied,
		"caller lacks permission",
		map[string]string{
			"Policy":     string(rule.Policy),
			"ReasonCode": decision.ReasonCode,
		},
	), g.Locale)
}

// resolutionStatus translates faults that prevented evaluation. Faults with
// a domain code keep it (bad tokens map to Unauthenticated); anything else
// surfaces as Internal.
func (g *Guard) resolutionStatus(err error) error {
	if apperrors.GetCode(err) != apperrors.CodeUnknown {
		return apperrors.HandleError(err, g.Locale)
	}
	return status.Error(codes.Internal, err.Error())
}

// logDeny emits a deny record correlated with the request and trace IDs so
// operators can explain rejected calls without client logs.
func (g *Guard) logDeny(ctx context.Context, fullMethod string, rule Rule, decision authz.Decision) {
	traceID := ""
	if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}
	log.Printf("authz deny method=%s policy=%s reason=%s request_id=%s trace_id=%s",
		fullMethod, rule.Policy, decision.ReasonCode, grpcmeta.RequestIDFromContext(ctx), traceID)
}

type sessionIDGetter interface{ GetSessionId() string }

type messageIDGetter interface{ GetMessageId() string }

type resourceIDGetter interface{ GetResourceId() string }

// resourceIDFromRequest pulls the target resource ID out of the request
// message. Generated message types expose the relevant getters; a generic
// GetResourceId takes precedence so endpoints that name the target
// explicitly win over kind-specific fields.
func resourceIDFromRequest(req any, kind authz.ResourceKind) string {
	if req == nil {
		return ""
	}
	if getter, ok := req.(resourceIDGetter); ok {
		if id := strings.TrimSpace(getter.GetResourceId()); id != "" {
			return id
		}
	}
	switch kind {
	case authz.ResourceKindSession:
		if getter, ok := req.(sessionIDGetter); ok {
			return strings.TrimSpace(getter.GetSessionId())
		}
	case authz.ResourceKindMessage:
		if getter, ok := req.(messageIDGetter); ok {
			return strings.TrimSpace(getter.GetMessageId())
		}
	}
	return ""
}
