package nodeset

// Emitter walks a Store's class buckets in the fixed emission order and
// invokes a consumer callback once per node. Emission is synchronous and
// strictly ordered; the consumer must not reenter the session from
// inside its callback.
type Emitter struct {
	onNode func(Node)
}

// NewEmitter returns an Emitter that calls onNode once per emitted node.
func NewEmitter(onNode func(Node)) *Emitter {
	return &Emitter{onNode: onNode}
}

// Emit walks store's buckets in the fixed class order (ReferenceType,
// ObjectType, VariableType, Object, Method, Variable). DataType nodes
// are stored but never walked here.
func (e *Emitter) Emit(store *Store) {
	for _, class := range emitClasses {
		for _, v := range store.Bucket(class).Values() {
			e.onNode(v.(Node))
		}
	}
}
