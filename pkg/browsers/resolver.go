package browsers

import (
	"embed"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/targetenv/pkg/errors"
	"github.com/arthur-debert/targetenv/pkg/versions"
	toml "github.com/pelletier/go-toml/v2"
)

//go:embed data/agents.toml
var agentsFS embed.FS

// Match is one agent/version pair produced by a query.
type Match struct {
	Agent   string `json:"agent"`
	Version string `json:"version"`
}

// String renders the pair the way browser databases print it: "ios_saf 10.0-10.2".
func (m Match) String() string {
	return m.Agent + " " + m.Version
}

// Resolver expands browser queries into agent/version pairs. Several queries
// are combined as a union.
type Resolver interface {
	Resolve(queries []string) ([]Match, error)
}

// Agent is one entry of the agent database.
type Agent struct {
	Name       string
	Aliases    []string `toml:"aliases"`
	Versions   []string `toml:"versions"`
	Unreleased []string `toml:"unreleased"`
}

// DatabaseResolver answers queries from an in-memory agent database.
type DatabaseResolver struct {
	agents  map[string]*Agent
	aliases map[string]string
}

// QueryShapes lists the query forms the resolver understands. Usage-share
// queries ("> 1%"), "defaults" and "not ..." are not supported.
const QueryShapes = `"last N versions", "last N <browser> versions", "<browser> >= V" (also >, <=, <), "<browser> V"`

var (
	lastAllRe   = regexp.MustCompile(`^last\s+(\d+)\s+versions?$`)
	lastAgentRe = regexp.MustCompile(`^last\s+(\d+)\s+(\S+)\s+versions?$`)
	compareRe   = regexp.MustCompile(`^(\S+)\s*(>=|<=|>|<)\s*([\d.]+)$`)
	exactRe     = regexp.MustCompile(`^(\S+)\s+(\S+)$`)
)

// NewDatabaseResolver loads the embedded agent database.
func NewDatabaseResolver() (*DatabaseResolver, error) {
	raw, err := agentsFS.ReadFile("data/agents.toml")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogInvalid, "failed to read agent database")
	}
	var agents map[string]*Agent
	if err := toml.Unmarshal(raw, &agents); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogInvalid, "failed to parse agent database")
	}
	return NewResolverFromAgents(agents), nil
}

// NewResolverFromAgents builds a resolver over the given agents, keyed by
// canonical agent name.
func NewResolverFromAgents(agents map[string]*Agent) *DatabaseResolver {
	r := &DatabaseResolver{
		agents:  make(map[string]*Agent, len(agents)),
		aliases: make(map[string]string),
	}
	for name, a := range agents {
		a.Name = name
		r.agents[name] = a
		r.aliases[strings.ToLower(name)] = name
		for _, alias := range a.Aliases {
			r.aliases[strings.ToLower(alias)] = name
		}
	}
	return r
}

// Agents returns the canonical agent names in sorted order.
func (r *DatabaseResolver) Agents() []string {
	names := make([]string, 0, len(r.agents))
	for n := range r.agents {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Resolve implements Resolver. Each query may itself be a comma separated
// list; all parts are unioned.
func (r *DatabaseResolver) Resolve(queries []string) ([]Match, error) {
	seen := make(map[Match]bool)
	var out []Match

	for _, q := range queries {
		for _, part := range strings.Split(q, ",") {
			part = strings.ToLower(strings.Join(strings.Fields(part), " "))
			if part == "" {
				continue
			}
			matches, err := r.resolveOne(part)
			if err != nil {
				return nil, err
			}
			for _, m := range matches {
				if !seen[m] {
					seen[m] = true
					out = append(out, m)
				}
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Agent != out[j].Agent {
			return out[i].Agent < out[j].Agent
		}
		return r.position(out[i]) < r.position(out[j])
	})
	return out, nil
}

func (r *DatabaseResolver) resolveOne(query string) ([]Match, error) {
	if m := lastAllRe.FindStringSubmatch(query); m != nil {
		n, _ := strconv.Atoi(m[1])
		var out []Match
		for _, name := range r.Agents() {
			out = append(out, r.last(r.agents[name], n)...)
		}
		return out, nil
	}

	if m := lastAgentRe.FindStringSubmatch(query); m != nil {
		agent, err := r.agent(m[2], query)
		if err != nil {
			return nil, err
		}
		n, _ := strconv.Atoi(m[1])
		return r.last(agent, n), nil
	}

	if m := compareRe.FindStringSubmatch(query); m != nil {
		agent, err := r.agent(m[1], query)
		if err != nil {
			return nil, err
		}
		return r.compare(agent, m[2], m[3], query)
	}

	if m := exactRe.FindStringSubmatch(query); m != nil {
		agent, err := r.agent(m[1], query)
		if err != nil {
			return nil, err
		}
		return r.exact(agent, m[2], query)
	}

	return nil, unknownQuery(query, "unrecognized query, supported forms are "+QueryShapes)
}

func (r *DatabaseResolver) agent(name, query string) (*Agent, error) {
	canonical, ok := r.aliases[name]
	if !ok {
		return nil, unknownQuery(query, fmt.Sprintf("unknown browser %q", name))
	}
	return r.agents[canonical], nil
}

func (r *DatabaseResolver) last(a *Agent, n int) []Match {
	start := len(a.Versions) - n
	if start < 0 {
		start = 0
	}
	out := make([]Match, 0, len(a.Versions)-start)
	for _, v := range a.Versions[start:] {
		out = append(out, Match{Agent: a.Name, Version: v})
	}
	return out
}

func (r *DatabaseResolver) compare(a *Agent, op, raw, query string) ([]Match, error) {
	bound, err := versions.Semverify(raw)
	if err != nil {
		return nil, unknownQuery(query, err.Error())
	}

	var out []Match
	for _, v := range a.Versions {
		canonical, err := versions.Semverify(versions.LowerBound(v))
		if err != nil {
			// entries like "all" carry no comparable version
			continue
		}
		c, _ := versions.Compare(canonical, bound)
		var keep bool
		switch op {
		case ">":
			keep = c > 0
		case ">=":
			keep = c >= 0
		case "<":
			keep = c < 0
		case "<=":
			keep = c <= 0
		}
		if keep {
			out = append(out, Match{Agent: a.Name, Version: v})
		}
	}
	return out, nil
}

func (r *DatabaseResolver) exact(a *Agent, raw, query string) ([]Match, error) {
	for _, v := range append(append([]string(nil), a.Versions...), a.Unreleased...) {
		if strings.EqualFold(v, raw) || versions.LowerBound(v) == raw {
			return []Match{{Agent: a.Name, Version: v}}, nil
		}
	}
	return nil, unknownQuery(query, fmt.Sprintf("unknown version %s of %s", raw, a.Name))
}

func (r *DatabaseResolver) position(m Match) int {
	a := r.agents[m.Agent]
	for i, v := range a.Versions {
		if v == m.Version {
			return i
		}
	}
	return len(a.Versions)
}

func unknownQuery(query, reason string) *errors.Error {
	return errors.Newf(errors.ErrInvalidSpecification, "browser query %q: %s", query, reason).
		WithDetail("query", query)
}
