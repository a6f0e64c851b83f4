// Package repository implements recipe persistence. Recipes live either in a single JSON
// document inside a gocloud.dev blob bucket (the default) or in a PostgreSQL or MySQL table.
package repository

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	"gocloud.dev/gcerrors"

	apperrors "github.com/allisson/shepatra/internal/errors"
	recipeDomain "github.com/allisson/shepatra/internal/recipe/domain"

	// Register the bucket drivers reachable through RECIPES_URL
	_ "gocloud.dev/blob/memblob"
)

// OpenBucket opens the bucket that holds the recipe book. When url is set it is passed to
// blob.OpenBucket (file:// and mem:// are registered); otherwise dir is opened on the local
// filesystem and created if missing.
func OpenBucket(ctx context.Context, url, dir string) (*blob.Bucket, error) {
	if url != "" {
		bucket, err := blob.OpenBucket(ctx, url)
		if err != nil {
			return nil, apperrors.Wrapf(err, "failed to open recipe bucket %q", url)
		}
		return bucket, nil
	}

	bucket, err := fileblob.OpenBucket(dir, &fileblob.Options{
		CreateDir: true,
		Metadata:  fileblob.MetadataDontWrite,
	})
	if err != nil {
		return nil, apperrors.Wrapf(err, "failed to open recipe directory %q", dir)
	}
	return bucket, nil
}

// BlobRecipeRepository stores the whole recipe book as one pretty-printed JSON object under
// a single key. Every operation is a full read-modify-write of that object, serialized by a
// mutex, so there is at most one writer per process.
//
// Entries are decoded only when read. A recipe naming an unknown algorithm fails Get and
// List, but it can still be replaced or deleted and the other recipes stay usable.
type BlobRecipeRepository struct {
	bucket *blob.Bucket
	key    string
	mu     sync.Mutex
}

// storedBook is the recipe book with every entry left undecoded.
type storedBook map[string]json.RawMessage

// NewBlobRecipeRepository creates a repository over key in bucket. The bucket is owned by
// the caller.
func NewBlobRecipeRepository(bucket *blob.Bucket, key string) *BlobRecipeRepository {
	return &BlobRecipeRepository{
		bucket: bucket,
		key:    key,
	}
}

// Create adds a recipe to the book.
func (b *BlobRecipeRepository) Create(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := book[recipe.Name]; ok {
		return recipeDomain.ErrRecipeAlreadyExists
	}

	return b.put(ctx, book, recipe)
}

// Update overwrites the layers of an existing recipe. The stored entry is not decoded, so
// a recipe with an unknown algorithm can be repaired.
func (b *BlobRecipeRepository) Update(ctx context.Context, recipe *recipeDomain.NamedRecipe) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := book[recipe.Name]; !ok {
		return recipeDomain.ErrRecipeNotFound
	}

	return b.put(ctx, book, recipe)
}

// Get retrieves a recipe by name.
func (b *BlobRecipeRepository) Get(ctx context.Context, name string) (*recipeDomain.NamedRecipe, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.load(ctx)
	if err != nil {
		return nil, err
	}
	entry, ok := book[name]
	if !ok {
		return nil, recipeDomain.ErrRecipeNotFound
	}

	recipe, err := recipeDomain.DecodeRecipe(name, entry)
	if err != nil {
		return nil, err
	}
	return &recipeDomain.NamedRecipe{Name: name, Recipe: recipe}, nil
}

// List returns every recipe ordered by name. The first entry that does not decode fails
// the whole listing.
func (b *BlobRecipeRepository) List(ctx context.Context) ([]*recipeDomain.NamedRecipe, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.load(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(book))
	for name := range book {
		names = append(names, name)
	}
	sort.Strings(names)

	recipes := make([]*recipeDomain.NamedRecipe, 0, len(names))
	for _, name := range names {
		recipe, err := recipeDomain.DecodeRecipe(name, book[name])
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, &recipeDomain.NamedRecipe{Name: name, Recipe: recipe})
	}
	return recipes, nil
}

// Delete removes a recipe by name, whether or not its layers still resolve.
func (b *BlobRecipeRepository) Delete(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	book, err := b.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := book[name]; !ok {
		return recipeDomain.ErrRecipeNotFound
	}

	delete(book, name)
	return b.save(ctx, book)
}

// load reads the book without decoding its entries. A missing object is an empty book.
func (b *BlobRecipeRepository) load(ctx context.Context) (storedBook, error) {
	data, err := b.bucket.ReadAll(ctx, b.key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return storedBook{}, nil
		}
		return nil, apperrors.Wrap(err, "failed to read recipe book")
	}

	var book storedBook
	if err := json.Unmarshal(data, &book); err != nil {
		return nil, apperrors.Wrapf(err, "failed to decode recipe book %q", b.key)
	}
	if book == nil {
		book = storedBook{}
	}
	return book, nil
}

func (b *BlobRecipeRepository) put(ctx context.Context, book storedBook, recipe *recipeDomain.NamedRecipe) error {
	entry, err := json.Marshal(recipe.Recipe)
	if err != nil {
		return apperrors.Wrapf(err, "failed to encode recipe %q", recipe.Name)
	}
	book[recipe.Name] = entry
	return b.save(ctx, book)
}

func (b *BlobRecipeRepository) save(ctx context.Context, book storedBook) error {
	data, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode recipe book")
	}

	opts := &blob.WriterOptions{ContentType: "application/json"}
	if err := b.bucket.WriteAll(ctx, b.key, data, opts); err != nil {
		return apperrors.Wrap(err, "failed to write recipe book")
	}
	return nil
}
