package records_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lao-sha/fissionmall/internal/adapters/out/memory"
	"github.com/lao-sha/fissionmall/internal/pkg/errs"
	"github.com/lao-sha/fissionmall/internal/pkg/records"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	Owner string `json:"owner"`
	Body  string `json:"body"`
}

func begin(t *testing.T, store *memory.Store) records.Transaction {
	t.Helper()
	tx, err := store.Begin(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })
	return tx
}

func TestTable(t *testing.T) {
	ctx := context.Background()
	table := records.NewTable[note]("note")

	t.Run("should insert and get a record", func(t *testing.T) {
		tx := begin(t, memory.NewStore())

		require.NoError(t, table.Insert(ctx, tx, "n1", note{Owner: "alice", Body: "hi"}))

		got, err := table.Get(ctx, tx, "n1")
		require.NoError(t, err)
		assert.Equal(t, note{Owner: "alice", Body: "hi"}, got)
	})

	t.Run("should reject duplicate keys", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		require.NoError(t, table.Insert(ctx, tx, "n1", note{Body: "first"}))

		err := table.Insert(ctx, tx, "n1", note{Body: "second"})

		require.ErrorIs(t, err, errs.ErrConflict)
		got, _ := table.Get(ctx, tx, "n1")
		assert.Equal(t, "first", got.Body)
	})

	t.Run("should report missing records", func(t *testing.T) {
		tx := begin(t, memory.NewStore())

		_, err := table.Get(ctx, tx, "missing")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		err = table.Remove(ctx, tx, "missing")
		require.ErrorIs(t, err, errs.ErrObjectNotFound)

		_, err = table.Mutate(ctx, tx, "missing", func(*note) error { return nil })
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should not persist a failed mutation", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		require.NoError(t, table.Insert(ctx, tx, "n1", note{Body: "before"}))
		boom := errors.New("boom")

		_, err := table.Mutate(ctx, tx, "n1", func(n *note) error {
			n.Body = "after"
			return boom
		})

		require.ErrorIs(t, err, boom)
		got, _ := table.Get(ctx, tx, "n1")
		assert.Equal(t, "before", got.Body)
	})

	t.Run("should remove a record", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		require.NoError(t, table.Insert(ctx, tx, "n1", note{}))

		require.NoError(t, table.Remove(ctx, tx, "n1"))

		exists, err := table.Exists(ctx, tx, "n1")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep insertion order", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 10)

		for _, key := range []string{"c", "a", "b"} {
			require.NoError(t, index.Add(ctx, tx, "alice", key))
		}

		members, err := index.Members(ctx, tx, "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"c", "a", "b"}, members)
	})

	t.Run("should return an empty bucket for unknown keys", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 10)

		members, err := index.Members(ctx, tx, "nobody")

		require.NoError(t, err)
		assert.Empty(t, members)
	})

	t.Run("should not duplicate members", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 10)

		require.NoError(t, index.Add(ctx, tx, "alice", "a"))
		require.NoError(t, index.Add(ctx, tx, "alice", "a"))

		members, _ := index.Members(ctx, tx, "alice")
		assert.Equal(t, []string{"a"}, members)
	})

	t.Run("should fail when the bucket is full", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 2)
		require.NoError(t, index.Add(ctx, tx, "alice", "a"))
		require.NoError(t, index.Add(ctx, tx, "alice", "b"))

		require.ErrorIs(t, index.CheckCapacity(ctx, tx, "alice"), errs.ErrCapacity)
		err := index.Add(ctx, tx, "alice", "c")

		require.ErrorIs(t, err, errs.ErrIndexIsFull)
		members, _ := index.Members(ctx, tx, "alice")
		assert.Equal(t, []string{"a", "b"}, members)
		require.NoError(t, index.CheckCapacity(ctx, tx, "bob"))
	})

	t.Run("should remove preserving order", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 10)
		for _, key := range []string{"a", "b", "c"} {
			require.NoError(t, index.Add(ctx, tx, "alice", key))
		}

		require.NoError(t, index.Remove(ctx, tx, "alice", "b"))
		require.NoError(t, index.Remove(ctx, tx, "alice", "zzz"))

		members, _ := index.Members(ctx, tx, "alice")
		assert.Equal(t, []string{"a", "c"}, members)
	})

	t.Run("should drop empty buckets", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "owner", 10)
		require.NoError(t, index.Add(ctx, tx, "alice", "a"))
		require.NoError(t, index.Add(ctx, tx, "bob", "b"))

		require.NoError(t, index.Remove(ctx, tx, "alice", "a"))

		buckets, err := index.Buckets(ctx, tx)
		require.NoError(t, err)
		assert.Equal(t, []string{"bob"}, buckets)
	})

	t.Run("should move a member between buckets", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		index := records.NewIndex("note", "status", 10)
		require.NoError(t, index.Add(ctx, tx, "0", "a"))

		require.NoError(t, index.Move(ctx, tx, "0", "1", "a"))

		from, _ := index.Members(ctx, tx, "0")
		to, _ := index.Members(ctx, tx, "1")
		assert.Empty(t, from)
		assert.Equal(t, []string{"a"}, to)
	})
}

func noteCollection(capacity int) records.Collection[note] {
	return records.Collection[note]{
		Table: records.NewTable[note]("note"),
		Key:   func(n note) string { return n.Body },
		Families: []records.Family[note]{
			{
				Index:  records.NewIndex("note", "owner", capacity),
				Bucket: func(n note) string { return n.Owner },
			},
		},
	}
}

func TestCollection(t *testing.T) {
	ctx := context.Background()

	t.Run("should index created records", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(10)

		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

		members, _ := c.Families[0].Index.Members(ctx, tx, "alice")
		assert.Equal(t, []string{"n1"}, members)
	})

	t.Run("should not insert when a bucket is full", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(1)
		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

		err := c.Create(ctx, tx, note{Owner: "alice", Body: "n2"})

		require.ErrorIs(t, err, errs.ErrCapacity)
		exists, _ := c.Exists(ctx, tx, "n2")
		assert.False(t, exists)
	})

	t.Run("should report duplicates before capacity", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(1)
		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

		err := c.Create(ctx, tx, note{Owner: "alice", Body: "n1"})

		require.ErrorIs(t, err, errs.ErrConflict)
	})

	t.Run("should move the key when the grouping field changes", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(10)
		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

		require.NoError(t, c.Save(ctx, tx, note{Owner: "bob", Body: "n1"}))

		alice, _ := c.Families[0].Index.Members(ctx, tx, "alice")
		bob, _ := c.Families[0].Index.Members(ctx, tx, "bob")
		assert.Empty(t, alice)
		assert.Equal(t, []string{"n1"}, bob)
	})

	t.Run("should delete the record and its index entries", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(10)
		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

		removed, err := c.Delete(ctx, tx, "n1")

		require.NoError(t, err)
		assert.Equal(t, "alice", removed.Owner)
		members, _ := c.Families[0].Index.Members(ctx, tx, "alice")
		assert.Empty(t, members)
		exists, _ := c.Exists(ctx, tx, "n1")
		assert.False(t, exists)
	})

	t.Run("should snapshot records and buckets", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		c := noteCollection(10)
		require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))
		require.NoError(t, c.Create(ctx, tx, note{Owner: "bob", Body: "n2"}))

		snapshot, err := c.Snapshot(ctx, tx)

		require.NoError(t, err)
		assert.Equal(t, "note", snapshot.Kind)
		assert.Equal(t, []string{"n1", "n2"}, snapshot.Keys)
		require.Len(t, snapshot.Families, 1)
		assert.Equal(t, map[string][]string{"alice": {"n1"}, "bob": {"n2"}}, snapshot.Families[0].Buckets)
		assert.Equal(t, map[string]string{"n1": "alice", "n2": "bob"}, snapshot.Families[0].Expected)
	})
}

func TestCollection_Members(t *testing.T) {
	ctx := context.Background()
	tx := begin(t, memory.NewStore())
	c := noteCollection(10)
	require.NoError(t, c.Create(ctx, tx, note{Owner: "alice", Body: "n1"}))

	t.Run("should list a bucket by property", func(t *testing.T) {
		members, err := c.Members(ctx, tx, "owner", "alice")

		require.NoError(t, err)
		assert.Equal(t, []string{"n1"}, members)
	})

	t.Run("should reject unknown properties", func(t *testing.T) {
		_, err := c.Members(ctx, tx, "colour", "red")

		require.ErrorIs(t, err, errs.ErrValidation)
	})
}

type label struct {
	Name  records.Text  `json:"name"`
	Alias *records.Text `json:"alias,omitempty"`
}

func TestText(t *testing.T) {
	ctx := context.Background()

	t.Run("should keep invalid UTF-8 in records and buckets", func(t *testing.T) {
		tx := begin(t, memory.NewStore())
		table := records.NewTable[label]("label")
		index := records.NewIndex("label", "name", 4)
		empty := records.Text("")

		require.NoError(t, table.Insert(ctx, tx, "k\xfe", label{Name: "n\xff", Alias: &empty}))
		require.NoError(t, index.Add(ctx, tx, "n\xff", "k\xfe"))

		got, err := table.Get(ctx, tx, "k\xfe")
		require.NoError(t, err)
		assert.Equal(t, records.Text("n\xff"), got.Name)
		require.NotNil(t, got.Alias)
		assert.Equal(t, records.Text(""), *got.Alias)

		members, err := index.Members(ctx, tx, "n\xff")
		require.NoError(t, err)
		assert.Equal(t, []string{"k\xfe"}, members)
	})

	t.Run("should write valid UTF-8 as a plain string", func(t *testing.T) {
		raw, err := json.Marshal(label{Name: "héllo"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"héllo"}`, string(raw))

		var got label
		require.NoError(t, json.Unmarshal([]byte(`{"name":{"base64":"/w=="}}`), &got))
		assert.Equal(t, records.Text("\xff"), got.Name)
	})
}
