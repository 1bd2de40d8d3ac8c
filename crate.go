package enginedb

import "context"

// Crate is a handle to one persisted crate row.
type Crate struct {
	db *Database
	id int64
}

// ID is the crate's assigned row id.
func (c *Crate) ID() int64 { return c.id }

// Name reads the crate's current name.
func (c *Crate) Name(ctx context.Context, tx *Tx) (string, error) {
	row, err := c.db.svc.CrateByID(ctx, innerTx(tx), c.id)
	if err != nil {
		return "", err
	}
	return row.Name, nil
}

// IsValid reports whether the crate still exists, by looking it up by id.
func (c *Crate) IsValid(ctx context.Context) bool {
	_, err := c.db.svc.CrateByID(ctx, nil, c.id)
	return err == nil
}

// Remove deletes the crate. Parent/child adjacency and track membership
// referencing it are cleaned up by the schema's cascades.
func (c *Crate) Remove(ctx context.Context, tx *Tx) error {
	return c.db.svc.RemoveCrate(ctx, innerTx(tx), c.id)
}
