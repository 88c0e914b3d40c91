package nodeset

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/GoetzGoerisch/open62541-nodeset-loader/ua"
	"github.com/qmuntal/stateless"
	log "github.com/sirupsen/logrus"
)

type parserState string

const (
	stateInit          parserState = "Init"
	stateNamespaceUris parserState = "NamespaceUris"
	stateURI           parserState = "Uri"
	stateAlias         parserState = "Alias"
	stateNode          parserState = "Node"
	stateDisplayName   parserState = "DisplayName"
	stateDescription   parserState = "Description"
	stateReferences    parserState = "References"
	stateReference     parserState = "Reference"
)

type parserTrigger string

const (
	triggerNamespaceUrisOpen  parserTrigger = "NamespaceUrisOpen"
	triggerNamespaceUrisClose parserTrigger = "NamespaceUrisClose"
	triggerURIOpen            parserTrigger = "UriOpen"
	triggerURIClose           parserTrigger = "UriClose"
	triggerAliasOpen          parserTrigger = "AliasOpen"
	triggerAliasClose         parserTrigger = "AliasClose"
	triggerNodeOpen           parserTrigger = "NodeOpen"
	triggerDisplayNameOpen    parserTrigger = "DisplayNameOpen"
	triggerDisplayNameClose   parserTrigger = "DisplayNameClose"
	triggerDescriptionOpen    parserTrigger = "DescriptionOpen"
	triggerDescriptionClose   parserTrigger = "DescriptionClose"
	triggerReferencesOpen     parserTrigger = "ReferencesOpen"
	triggerReferencesClose    parserTrigger = "ReferencesClose"
	triggerReferenceOpen      parserTrigger = "ReferenceOpen"
	triggerReferenceClose     parserTrigger = "ReferenceClose"
	triggerNodeClose          parserTrigger = "NodeClose"
)

// nodeElementNames maps the recognized node-element local names to the
// class they allocate. ReferenceType is singled out at close time (see
// Configure below) since closing it also runs the classifier.
var nodeElementNames = map[string]ua.NodeClass{
	"UAObject":        ua.NodeClassObject,
	"UAObjectType":    ua.NodeClassObjectType,
	"UAVariable":      ua.NodeClassVariable,
	"UAVariableType":  ua.NodeClassVariableType,
	"UAMethod":        ua.NodeClassMethod,
	"UADataType":      ua.NodeClassDataType,
	"UAReferenceType": ua.NodeClassReferenceType,
}

// transparentElements pass through the Init state without driving the
// FSM: they structure the document but carry no state of their own.
var transparentElements = map[string]bool{
	"UANodeSet": true,
	"Aliases":   true,
}

// Parser drives a TokenSource through the nodeset grammar, described in
// terms of ten states, nine of which are states of the state machine.
// Elements outside the recognized grammar are skipped as a subtree
// without touching the state machine at all — a parallel "Unknown" mode
// rather than a literal tenth state, since
// returning to an arbitrary calling state after a skip has no clean
// static Permit encoding.
type Parser struct {
	sm *stateless.StateMachine

	ns         *NamespaceTable
	aliases    *AliasTable
	classifier *ReferenceClassifier
	store      *Store

	registerNamespace func(uri string) uint16

	log         *log.Entry
	diagnostics []Diagnostic

	// capture holds the destination of the most recently routed
	// char-data slot, cleared once its owning element closes.
	capture *string

	uriBuf         string
	aliasName      string
	aliasRawBuf    string
	displayNameBuf string
	descriptionBuf string
	refTargetBuf   string

	curNode      Node
	curNodeClass ua.NodeClass
	curRefHier   bool

	// hierRawTargets and nonHierRawTargets hold each reference's raw,
	// unresolved target text in document order, parallel to the
	// corresponding NodeHeader list, until </References> resolves them.
	hierRawTargets    []string
	nonHierRawTargets []string

	skipDepth int
	skipName  string
}

// NewParser returns a Parser that files allocated nodes into store and
// asks the host to assign a global namespace index via registerNamespace.
// Emission to an external consumer is the Session's job, after Run
// completes and the Topological Sorter has ordered the Store.
func NewParser(ns *NamespaceTable, aliases *AliasTable, classifier *ReferenceClassifier, store *Store, registerNamespace func(string) uint16, logger *log.Entry) *Parser {
	p := &Parser{
		ns:                ns,
		aliases:           aliases,
		classifier:        classifier,
		store:             store,
		registerNamespace: registerNamespace,
		log:               logger,
	}
	p.configure()
	return p
}

func (p *Parser) configure() {
	p.sm = stateless.NewStateMachine(stateInit)

	p.sm.Configure(stateInit).
		Permit(triggerNamespaceUrisOpen, stateNamespaceUris).
		Permit(triggerAliasOpen, stateAlias).
		Permit(triggerNodeOpen, stateNode)

	p.sm.Configure(stateNamespaceUris).
		Permit(triggerURIOpen, stateURI).
		Permit(triggerNamespaceUrisClose, stateInit)

	p.sm.Configure(stateURI).
		Permit(triggerURIClose, stateNamespaceUris)

	p.sm.Configure(stateAlias).
		Permit(triggerAliasClose, stateInit)

	p.sm.Configure(stateNode).
		Permit(triggerDisplayNameOpen, stateDisplayName).
		Permit(triggerDescriptionOpen, stateDescription).
		Permit(triggerReferencesOpen, stateReferences).
		Permit(triggerNodeClose, stateInit)

	p.sm.Configure(stateDisplayName).
		Permit(triggerDisplayNameClose, stateNode)

	p.sm.Configure(stateDescription).
		Permit(triggerDescriptionClose, stateNode)

	p.sm.Configure(stateReferences).
		Permit(triggerReferenceOpen, stateReference).
		Permit(triggerReferencesClose, stateNode)

	p.sm.Configure(stateReference).
		Permit(triggerReferenceClose, stateReferences)

	p.sm.Activate()
}

// Run drains src until io.EOF, driving the state machine and the node
// store. It returns an *XMLScanError for anything the tokenizer itself
// rejects, a *MissingRequiredAttributeError for a required attribute
// that is absent, and a wrapped error for a token the state machine has
// no transition for; malformed ids are recorded as soft diagnostics.
func (p *Parser) Run(src TokenSource) error {
	for {
		tok, err := src.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &XMLScanError{Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := p.open(t); err != nil {
				return err
			}
		case xml.EndElement:
			if err := p.close(t.Name.Local); err != nil {
				return err
			}
		case xml.CharData:
			if p.capture != nil {
				*p.capture += string(t)
			}
		}
	}
}

// Diagnostics returns every soft error accumulated during Run.
func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

func (p *Parser) diag(kind DiagnosticKind, format string, args ...interface{}) {
	d := Diagnostic{Kind: kind, Message: fmt.Sprintf(format, args...)}
	p.diagnostics = append(p.diagnostics, d)
	p.log.Warn(d.String())
}

func (p *Parser) open(el xml.StartElement) error {
	name := el.Name.Local

	if p.skipDepth > 0 {
		p.skipDepth++
		return nil
	}

	switch p.sm.MustState() {
	case stateInit:
		switch {
		case name == "NamespaceUris":
			return p.fire(triggerNamespaceUrisOpen)
		case name == "Alias":
			return p.openAlias(el)
		case transparentElements[name]:
			return nil
		}
		if class, recognized := nodeElementNames[name]; recognized {
			return p.openNode(el, class)
		}
		return p.beginSkip(name)

	case stateNamespaceUris:
		if name == "Uri" {
			p.uriBuf = ""
			p.capture = &p.uriBuf
			return p.fire(triggerURIOpen)
		}
		return p.beginSkip(name)

	case stateNode:
		switch name {
		case "DisplayName":
			p.displayNameBuf = ""
			p.capture = &p.displayNameBuf
			return p.fire(triggerDisplayNameOpen)
		case "Description":
			p.descriptionBuf = ""
			p.capture = &p.descriptionBuf
			return p.fire(triggerDescriptionOpen)
		case "References":
			p.hierRawTargets = nil
			p.nonHierRawTargets = nil
			return p.fire(triggerReferencesOpen)
		}
		return p.beginSkip(name)

	case stateReferences:
		if name == "Reference" {
			return p.openReference(el)
		}
		return p.beginSkip(name)

	default:
		return p.beginSkip(name)
	}
	return nil
}

func (p *Parser) close(name string) error {
	if p.skipDepth > 0 {
		p.skipDepth--
		return nil
	}

	switch p.sm.MustState() {
	case stateURI:
		if name == "Uri" {
			p.capture = nil
			global := p.registerNamespace(p.uriBuf)
			p.ns.ReserveLocal(p.uriBuf)
			p.ns.AssignGlobal(uint16(p.ns.Len()-1), global)
			return p.fire(triggerURIClose)
		}
	case stateNamespaceUris:
		if name == "NamespaceUris" {
			return p.fire(triggerNamespaceUrisClose)
		}
	case stateAlias:
		if name == "Alias" {
			p.capture = nil
			id, ok := ua.ParseNodeID(p.aliasRawBuf, p.ns)
			if !ok {
				p.diag(UnresolvableReference, "alias %q: malformed id %q", p.aliasName, p.aliasRawBuf)
			}
			p.aliases.Define(p.aliasName, id)
			return p.fire(triggerAliasClose)
		}
	case stateDisplayName:
		if name == "DisplayName" {
			p.capture = nil
			p.curNode.Header().DisplayName = ua.LocalizedText{Text: p.displayNameBuf}
			return p.fire(triggerDisplayNameClose)
		}
	case stateDescription:
		if name == "Description" {
			p.capture = nil
			p.curNode.Header().Description = ua.LocalizedText{Text: p.descriptionBuf}
			return p.fire(triggerDescriptionClose)
		}
	case stateReference:
		if name == "Reference" {
			p.capture = nil
			if p.curRefHier {
				p.hierRawTargets = append(p.hierRawTargets, p.refTargetBuf)
			} else {
				p.nonHierRawTargets = append(p.nonHierRawTargets, p.refTargetBuf)
			}
			return p.fire(triggerReferenceClose)
		}
	case stateReferences:
		if name == "References" {
			p.resolveReferenceTargets()
			return p.fire(triggerReferencesClose)
		}
	case stateNode:
		if _, recognized := nodeElementNames[name]; recognized {
			return p.closeNode(name)
		}
	}
	return nil
}

func (p *Parser) fire(t parserTrigger) error {
	if err := p.sm.Fire(t); err != nil {
		return fmt.Errorf("parser: %w", err)
	}
	return nil
}

func (p *Parser) beginSkip(name string) error {
	p.skipDepth = 1
	p.skipName = name
	p.log.Debugf("skipping unrecognized element %s", name)
	return nil
}

func (p *Parser) openAlias(el xml.StartElement) error {
	name, err := getAttr(el, attrAlias)
	if err != nil {
		return err
	}
	p.aliasName = name
	p.aliasRawBuf = ""
	p.capture = &p.aliasRawBuf
	return p.fire(triggerAliasOpen)
}

func (p *Parser) openNode(el xml.StartElement, class ua.NodeClass) error {
	rawID, err := getAttr(el, attrNodeID)
	if err != nil {
		return err
	}
	id, ok := ua.ParseNodeID(rawID, p.ns)
	if !ok {
		p.diag(UnresolvableReference, "node %s: malformed NodeId %q", el.Name.Local, rawID)
	}
	browseRaw, err := getAttr(el, attrBrowseName)
	if err != nil {
		return err
	}

	var node Node
	switch class {
	case ua.NodeClassObject:
		n := &ObjectNode{NodeHeader: newHeader(class)}
		if n.ParentNodeID, err = nodeIDAttr(el, attrParentNodeID, p.ns); err != nil {
			return err
		}
		if n.EventNotifier, err = getAttr(el, attrEventNotifier); err != nil {
			return err
		}
		node = n
	case ua.NodeClassObjectType:
		n := &ObjectTypeNode{NodeHeader: newHeader(class)}
		if n.IsAbstract, err = getAttrBool(el, attrIsAbstract); err != nil {
			return err
		}
		node = n
	case ua.NodeClassVariableType:
		n := &VariableTypeNode{NodeHeader: newHeader(class)}
		if n.IsAbstract, err = getAttrBool(el, attrIsAbstract); err != nil {
			return err
		}
		node = n
	case ua.NodeClassVariable:
		n := &VariableNode{NodeHeader: newHeader(class)}
		if n.ParentNodeID, err = nodeIDAttr(el, attrParentNodeID, p.ns); err != nil {
			return err
		}
		if n.dataTypeRaw, err = getAttr(el, attrDataType); err != nil {
			return err
		}
		if n.ValueRank, err = getAttr(el, attrValueRank); err != nil {
			return err
		}
		if n.ArrayDimensions, err = getAttr(el, attrArrayDimension); err != nil {
			return err
		}
		node = n
	case ua.NodeClassMethod:
		n := &MethodNode{NodeHeader: newHeader(class)}
		if n.ParentNodeID, err = nodeIDAttr(el, attrParentNodeID, p.ns); err != nil {
			return err
		}
		node = n
	case ua.NodeClassDataType:
		node = &DataTypeNode{NodeHeader: newHeader(class)}
	case ua.NodeClassReferenceType:
		node = &ReferenceTypeNode{NodeHeader: newHeader(class)}
	default:
		return fmt.Errorf("parser: unhandled node class %s", class)
	}

	h := node.Header()
	h.ID = id
	h.BrowseName = ua.ParseQualifiedName(browseRaw)
	p.curNode = node
	p.curNodeClass = class
	return p.fire(triggerNodeOpen)
}

func nodeIDAttr(el xml.StartElement, def attrDef, ns ua.NamespaceResolver) (ua.NodeID, error) {
	raw, err := getAttr(el, def)
	if err != nil {
		return ua.NodeID{}, err
	}
	id, _ := ua.ParseNodeID(raw, ns)
	return id, nil
}

func (p *Parser) openReference(el xml.StartElement) error {
	isForward, err := getAttrBool(el, attrIsForward)
	if err != nil {
		return err
	}
	refTypeRaw, err := getAttr(el, attrReferenceType)
	if err != nil {
		return err
	}
	refType, ok := ua.ParseNodeID(refTypeRaw, p.ns)
	if !ok {
		p.diag(UnresolvableReference, "reference type %q on node %s unresolvable", refTypeRaw, p.curNode.Header().ID)
	}

	hierarchical := p.classifier.IsHierarchical(refType)
	ref := ua.Reference{
		RefType:             refType,
		IsForward:           isForward,
		HierarchicalAtClose: hierarchical,
	}
	h := p.curNode.Header()
	h.AppendRef(ref, hierarchical)
	p.curRefHier = hierarchical
	p.refTargetBuf = ""
	p.capture = &p.refTargetBuf
	return p.fire(triggerReferenceOpen)
}

// resolveReferenceTargets runs at </References> close: every reference's
// target was captured as raw character data while its own <Reference>
// element was open, and is resolved now against the namespace table in
// effect at the time the enclosing block closes — not at </Reference>,
// matching the source's timing exactly (see the known-imprecision note
// this preserves: a target captured before the enclosing close always
// resolves correctly regardless of exactly when within the block it was
// read).
func (p *Parser) resolveReferenceTargets() {
	h := p.curNode.Header()

	hier := Refs(h.HierarchicalRefs)
	for i, ref := range hier {
		raw := ""
		if i < len(p.hierRawTargets) {
			raw = p.hierRawTargets[i]
		}
		target, ok := ua.ParseNodeID(raw, p.ns)
		if !ok {
			p.diag(UnresolvableReference, "reference target on node %s unresolvable", h.ID)
		}
		ref.Target = target
		setRef(h.HierarchicalRefs, i, ref)
	}

	nonHier := Refs(h.NonHierarchicalRefs)
	for i, ref := range nonHier {
		raw := ""
		if i < len(p.nonHierRawTargets) {
			raw = p.nonHierRawTargets[i]
		}
		target, ok := ua.ParseNodeID(raw, p.ns)
		if !ok {
			p.diag(UnresolvableReference, "reference target on node %s unresolvable", h.ID)
		}
		ref.Target = target
		setRef(h.NonHierarchicalRefs, i, ref)
	}
}

// closeNode files the just-completed node into the Store. Emission to
// the external consumer happens later, after the whole document has
// parsed and the Topological Sorter has ordered every class bucket.
func (p *Parser) closeNode(name string) error {
	node := p.curNode
	p.store.Add(node)
	if rt, ok := node.(*ReferenceTypeNode); ok {
		p.classifier.Observe(rt)
	}
	p.curNode = nil
	p.curNodeClass = 0
	return p.fire(triggerNodeClose)
}
