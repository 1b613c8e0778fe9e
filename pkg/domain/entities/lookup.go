package entities

// Lookup pre-builds per-key indices over one snapshot so that repeated joins
// cost O(1) instead of a scan each. Build it once per snapshot; it is not
// updated when the store commits a new snapshot.
type Lookup struct {
	users         map[UserID]User
	suppliers     map[SupplierID]Supplier
	items         map[ItemID]Item
	serials       map[SerialID]Serial
	orders        map[OrderID]Order
	quotes        map[QuoteID]Quote
	serialsByItem map[ItemID][]Serial
}

// NewLookup indexes every collection of the snapshot
func NewLookup(snap Snapshot) *Lookup {
	l := &Lookup{
		users:         make(map[UserID]User, len(snap.Users)),
		suppliers:     make(map[SupplierID]Supplier, len(snap.Suppliers)),
		items:         make(map[ItemID]Item, len(snap.Items)),
		serials:       make(map[SerialID]Serial, len(snap.Serials)),
		orders:        make(map[OrderID]Order, len(snap.Orders)),
		quotes:        make(map[QuoteID]Quote, len(snap.Quotes)),
		serialsByItem: make(map[ItemID][]Serial, len(snap.Items)),
	}
	for _, u := range snap.Users {
		l.users[u.ID] = u
	}
	for _, s := range snap.Suppliers {
		l.suppliers[s.ID] = s
	}
	for _, item := range snap.Items {
		l.items[item.ID] = item
	}
	for _, serial := range snap.Serials {
		l.serials[serial.ID] = serial
		l.serialsByItem[serial.ItemID] = append(l.serialsByItem[serial.ItemID], serial)
	}
	for _, o := range snap.Orders {
		l.orders[o.ID] = o
	}
	for _, q := range snap.Quotes {
		l.quotes[q.ID] = q
	}
	return l
}

// User resolves a user id
func (l *Lookup) User(id UserID) (User, bool) {
	u, ok := l.users[id]
	return u, ok
}

// Supplier resolves a supplier id
func (l *Lookup) Supplier(id SupplierID) (Supplier, bool) {
	s, ok := l.suppliers[id]
	return s, ok
}

// Item resolves an item id
func (l *Lookup) Item(id ItemID) (Item, bool) {
	item, ok := l.items[id]
	return item, ok
}

// Serial resolves a serial id
func (l *Lookup) Serial(id SerialID) (Serial, bool) {
	s, ok := l.serials[id]
	return s, ok
}

// Order resolves an order id
func (l *Lookup) Order(id OrderID) (Order, bool) {
	o, ok := l.orders[id]
	return o, ok
}

// Quote resolves a quote id
func (l *Lookup) Quote(id QuoteID) (Quote, bool) {
	q, ok := l.quotes[id]
	return q, ok
}

// SerialsForItem returns every serialized unit of one catalog item, in
// snapshot order
func (l *Lookup) SerialsForItem(id ItemID) []Serial {
	return l.serialsByItem[id]
}
