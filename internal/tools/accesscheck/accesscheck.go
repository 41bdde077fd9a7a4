// Package accesscheck evaluates one authorization decision from the command
// line.
//
// It assembles the same request context a gRPC caller would produce (identity
// headers, optional bearer token), resolves the target resource inline or
// from the chat backend's SQLite database, and runs the requested policy
// through the guard. Operators use it to answer "would this call be allowed"
// without touching the backend.
package accesscheck

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"google.golang.org/grpc/metadata"

	"github.com/louisbranch/chatguard/authz"
	"github.com/louisbranch/chatguard/grpcmeta"
	"github.com/louisbranch/chatguard/guard"
	apperrors "github.com/louisbranch/chatguard/internal/platform/errors"
	"github.com/louisbranch/chatguard/internal/platform/grpcx"
	"github.com/louisbranch/chatguard/internal/platform/timeouts"
	"github.com/louisbranch/chatguard/store"
	"github.com/louisbranch/chatguard/store/memory"
	"github.com/louisbranch/chatguard/store/sqlite"
	"github.com/louisbranch/chatguard/token"
)

// checkMethod is the synthetic method name the simulated call runs under.
const checkMethod = "/chatguard.v1.AccessCheck/Check"

// Config holds access-check command configuration.
type Config struct {
	Policy       string
	ResourceKind string
	ResourceID   string
	OwnerID      string
	UserID       string
	Role         string
	Token        string
	DBPath       string        `env:"CHATGUARD_RESOURCE_DB_PATH"`
	WaitAddr     string        `env:"CHATGUARD_BACKEND_GRPC_ADDR"`
	Timeout      time.Duration `env:"CHATGUARD_ACCESS_CHECK_TIMEOUT" envDefault:"10s"`
}

type envConfig struct {
	DBPath   string        `env:"CHATGUARD_RESOURCE_DB_PATH"`
	WaitAddr string        `env:"CHATGUARD_BACKEND_GRPC_ADDR"`
	Timeout  time.Duration `env:"CHATGUARD_ACCESS_CHECK_TIMEOUT" envDefault:"10s"`
}

// ParseConfig parses flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		DBPath:   envCfg.DBPath,
		WaitAddr: envCfg.WaitAddr,
		Timeout:  envCfg.Timeout,
	}

	fs.StringVar(&cfg.Policy, "policy", "", "policy to evaluate (authenticated|resource_owner|customer|employee|admin)")
	fs.StringVar(&cfg.ResourceKind, "resource-kind", "", "target resource kind for ownership checks (session|message)")
	fs.StringVar(&cfg.ResourceID, "resource-id", "", "target resource ID for ownership checks")
	fs.StringVar(&cfg.OwnerID, "owner-id", "", "inline resource owner, skips the database lookup")
	fs.StringVar(&cfg.UserID, "user-id", "", "caller user ID (empty simulates an unauthenticated caller)")
	fs.StringVar(&cfg.Role, "role", "", "caller role (customer|employee|admin)")
	fs.StringVar(&cfg.Token, "token", "", "bearer access token for the admin claim fallback")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "path to the chat sqlite database (default: CHATGUARD_RESOURCE_DB_PATH)")
	fs.StringVar(&cfg.WaitAddr, "wait-addr", cfg.WaitAddr, "wait for this gRPC backend to report healthy first (default: CHATGUARD_BACKEND_GRPC_ADDR)")
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// checkRequest names the check target the way a generated request message
// would, so the guard's extraction path sees a realistic message.
type checkRequest struct {
	resourceID string
}

func (r checkRequest) GetResourceId() string {
	return r.resourceID
}

// Run executes the access check and writes the decision to out.
// The returned decision lets callers map deny onto an exit code.
func Run(ctx context.Context, cfg Config, out io.Writer) (authz.Decision, error) {
	if out == nil {
		out = io.Discard
	}

	policy, ok := authz.NormalizePolicy(cfg.Policy)
	if !ok {
		return authz.Decision{}, apperrors.WithMetadata(apperrors.CodePolicyInvalid,
			"unknown policy", map[string]string{"Policy": cfg.Policy})
	}
	rule := guard.Rule{Policy: policy}
	if policy == authz.PolicyResourceOwner {
		kind, ok := authz.NormalizeResourceKind(cfg.ResourceKind)
		if !ok {
			return authz.Decision{}, apperrors.WithMetadata(apperrors.CodeResourceKindInvalid,
				"unknown resource kind", map[string]string{"Kind": cfg.ResourceKind})
		}
		rule.Resource = kind
	}

	resources, cleanup, err := openResources(ctx, cfg, rule)
	if err != nil {
		return authz.Decision{}, err
	}
	defer cleanup()

	g := &guard.Guard{
		Rules:     guard.Ruleset{checkMethod: rule},
		Resources: resources,
	}
	if cfg.Token != "" {
		tokenCfg, err := token.LoadConfigFromEnv(nil)
		if err != nil {
			return authz.Decision{}, err
		}
		g.Tokens = &tokenCfg
	}
	if err := g.Validate(); err != nil {
		return authz.Decision{}, err
	}

	if cfg.WaitAddr != "" {
		logf := func(format string, args ...any) {
			log.Printf("access-check "+format, args...)
		}
		conn, err := grpcx.DialWithHealth(ctx, nil, cfg.WaitAddr, timeouts.GRPCDial, logf, grpcx.DefaultClientDialOptions()...)
		if err != nil {
			return authz.Decision{}, fmt.Errorf("wait for backend: %w", err)
		}
		_ = conn.Close()
	}

	decision, err := g.Check(callerContext(ctx, cfg), rule, checkRequest{resourceID: cfg.ResourceID})
	if err != nil {
		return authz.Decision{}, err
	}

	result := "deny"
	if decision.Allowed {
		result = "allow"
	}
	if _, err := fmt.Fprintf(out, "result: %s\nreason: %s\n", result, decision.ReasonCode); err != nil {
		return authz.Decision{}, err
	}
	return decision, nil
}

// callerContext rebuilds the incoming gRPC metadata a real caller would send.
func callerContext(ctx context.Context, cfg Config) context.Context {
	pairs := []string{}
	if cfg.UserID != "" {
		pairs = append(pairs, grpcmeta.UserIDHeader, cfg.UserID)
	}
	if cfg.Role != "" {
		pairs = append(pairs, grpcmeta.UserRoleHeader, cfg.Role)
	}
	if cfg.Token != "" {
		pairs = append(pairs, grpcmeta.AuthorizationHeader, "Bearer "+cfg.Token)
	}
	return metadata.NewIncomingContext(ctx, metadata.Pairs(pairs...))
}

// openResources picks the resource source for ownership checks: an inline
// owner seeds a one-entry store, otherwise the chat database is opened
// read-only. Policies that never consult a resource get no store.
func openResources(ctx context.Context, cfg Config, rule guard.Rule) (store.Store, func(), error) {
	noop := func() {}
	if rule.Policy != authz.PolicyResourceOwner {
		return nil, noop, nil
	}
	if cfg.OwnerID != "" {
		seeded := memory.NewMemory()
		resource := authz.Resource{Kind: rule.Resource, ID: cfg.ResourceID, OwnerID: cfg.OwnerID}
		if err := seeded.Put(ctx, resource); err != nil {
			return nil, noop, err
		}
		return seeded, noop, nil
	}
	if cfg.DBPath == "" {
		return nil, noop, errors.New("ownership checks need -owner-id or a chat database path")
	}
	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, noop, err
	}
	return db, func() { _ = db.Close() }, nil
}
