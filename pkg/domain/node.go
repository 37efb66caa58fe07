package domain

// NodeKind tags which shape a Node carries.
type NodeKind uint8

const (
	// NodeReal is a real account.
	NodeReal NodeKind = iota
	// NodePseudo is a synthetic node splitting one account's outgoing
	// multi-edges for a single token (spec.md §3, §4.1).
	NodePseudo
)

// Node is spec's tagged union over Real(Address) and Pseudo(from, token).
// It is implemented as a small comparable struct rather than an interface
// so it can be used directly as a map key — the idiomatic Go rendering of
// "a tagged sum with two shapes... require total order and equality"
// (spec.md §9).
type Node struct {
	Kind  NodeKind
	Addr  Address // valid when Kind == NodeReal
	Owner Address // valid when Kind == NodePseudo: the account that introduced the pseudo-node
	Token Address // valid when Kind == NodePseudo: the token being split
}

// Real constructs a real-account node.
func Real(addr Address) Node {
	return Node{Kind: NodeReal, Addr: addr}
}

// Pseudo constructs the pseudo-node Pseudo(owner, token) introduced by the
// graph builder for every (sender, token) pair.
func Pseudo(owner, token Address) Node {
	return Node{Kind: NodePseudo, Owner: owner, Token: token}
}

// IsReal reports whether n represents a real account.
func (n Node) IsReal() bool {
	return n.Kind == NodeReal
}

// IsPseudo reports whether n represents a pseudo-node.
func (n Node) IsPseudo() bool {
	return n.Kind == NodePseudo
}

// Less defines the total order over nodes used to tie-break the
// descending-capacity BFS neighbour ordering (spec.md §4.2.1) and to order
// the used-edge key snapshots the extractor walks (spec.md §4.3; its
// smallest balance-holding account is picked with Address.Less). Real nodes
// sort before pseudo-nodes; within a kind, nodes
// compare by their constituent addresses.
func (n Node) Less(other Node) bool {
	if n.Kind != other.Kind {
		return n.Kind < other.Kind
	}
	switch n.Kind {
	case NodeReal:
		return n.Addr.Less(other.Addr)
	default:
		if n.Owner != other.Owner {
			return n.Owner.Less(other.Owner)
		}
		return n.Token.Less(other.Token)
	}
}

// String renders the node for logs and test failures.
func (n Node) String() string {
	if n.Kind == NodeReal {
		return n.Addr.String()
	}
	return "pseudo(" + n.Owner.String() + "," + n.Token.String() + ")"
}
