package nodeset

import (
	"os"
	"time"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	log "github.com/sirupsen/logrus"
)

// Session owns every collaborator needed to ingest one NodeSet document:
// the Namespace Table, Alias Table, Reference-Type Classifier, and Node
// Store; Load builds the Parser, Sorter and Emitter on top of them. A
// Session ingests exactly one document; create a new one per Load.
type Session struct {
	ns         *NamespaceTable
	aliases    *AliasTable
	classifier *ReferenceClassifier
	store      *Store

	log         *log.Entry
	diagnostics []Diagnostic
}

// NewSession returns a Session ready for a single Load call. logger may
// be nil, in which case a standard logrus logger is used.
func NewSession(logger *log.Logger) *Session {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Session{
		ns:         NewNamespaceTable(),
		aliases:    NewAliasTable(),
		classifier: NewReferenceClassifier(),
		store:      NewStore(),
		log:        logger.WithField("component", "nodeset"),
	}
}

// Load parses the NodeSet document at path, asking registerNamespace to
// assign a global index to each declared namespace URI, then sorts and
// emits every node to onNode in dependency order. It returns an
// *InputOpenError, *XMLScanError or *MissingRequiredAttributeError (or
// any other error Parser.Run returns) on fatal failure; soft problems
// are recorded and available afterward via Diagnostics.
func (s *Session) Load(path string, registerNamespace func(uri string) uint16, onNode func(Node)) error {
	f, err := os.Open(path)
	if err != nil {
		return &InputOpenError{Path: path, Err: err}
	}
	defer f.Close()

	start := time.Now()
	parser := NewParser(s.ns, s.aliases, s.classifier, s.store, registerNamespace, s.log)
	dec := newDecoder(f)
	if err := parser.Run(dec); err != nil {
		return err
	}
	s.diagnostics = append(s.diagnostics, parser.Diagnostics()...)
	s.reconcileVariableDataTypes()
	afterParse := time.Now()

	diags := NewSorter().Sort(s.store)
	s.diagnostics = append(s.diagnostics, diags...)
	afterSort := time.Now()

	NewEmitter(onNode).Emit(s.store)
	end := time.Now()

	s.log.WithFields(log.Fields{
		"parse": afterParse.Sub(start),
		"sort":  afterSort.Sub(afterParse),
		"add":   end.Sub(afterSort),
		"sum":   end.Sub(start),
	}).Debug("load complete")
	return nil
}

// reconcileVariableDataTypes resolves every Variable's DataType
// attribute now that the whole document — and therefore every Alias —
// has been seen. The raw value names a defined Alias if one exists
// under that name, otherwise it is parsed directly as a NodeId.
func (s *Session) reconcileVariableDataTypes() {
	for _, v := range s.store.Bucket(ua.NodeClassVariable).Values() {
		variable := v.(*VariableNode)
		if id, ok := s.aliases.Resolve(variable.dataTypeRaw); ok {
			variable.DataType = id
			continue
		}
		id, ok := ua.ParseNodeID(variable.dataTypeRaw, s.ns)
		if !ok {
			s.diagnostics = append(s.diagnostics, Diagnostic{
				Kind:    UnresolvableDataType,
				Message: "variable " + variable.ID.String() + ": unresolvable DataType " + variable.dataTypeRaw,
			})
		}
		variable.DataType = id
	}
}

// Diagnostics returns every soft error accumulated across parsing,
// reconciliation, and sorting.
func (s *Session) Diagnostics() []Diagnostic {
	return s.diagnostics
}

// Namespaces returns the session's Namespace Table, useful for a caller
// that wants to inspect the final URI-to-global-index mapping once
// Load returns.
func (s *Session) Namespaces() *NamespaceTable {
	return s.ns
}

// Lookup returns the node that resolved to id, if any — useful once
// Load returns and every node's final NodeId is known, e.g. to resolve
// a reference target a caller observed via onNode back to its node.
func (s *Session) Lookup(id ua.NodeID) (Node, bool) {
	return s.store.ByID(id)
}

// NodeCount returns the total number of nodes stored by the most recent
// Load, across every class including DataType — every recognized node
// element in the input, whether or not the Emitter walks its class.
func (s *Session) NodeCount() int {
	return s.store.Len()
}
