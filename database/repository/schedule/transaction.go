package scheduleRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// WithTransaction runs fn inside a Mongo session transaction. The
// session context is handed to fn, so every repository call made with it
// (including calls into the request repository) joins the transaction.
//
// Two allocators racing for the same worker-day abort the loser with a
// transient write conflict rather than a failed filter guard. The
// driver's WithTransaction retries fn on TransientTransactionError, so
// the loser re-reads the post-commit counts and fails its free check
// cleanly instead of surfacing the conflict. fn must therefore tolerate
// being re-run from the top.
func (r *MongoScheduleRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
