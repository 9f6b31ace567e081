package registry

import (
	"context"

	"github.com/pkg/errors"
	"github.com/realmkit/realmfeed/model"
	"gorm.io/gorm"
)

// PostStore resolves post payloads from the local posts table. Posts are
// the one feed source this service stores itself; everything else comes
// from the registry.
type PostStore struct {
	DB *gorm.DB
}

func NewPostStore(db *gorm.DB) *PostStore {
	return &PostStore{DB: db}
}

// ResolvePosts bulk loads posts by id, keyed by id. Deleted or unknown
// ids are absent from the map.
func (s *PostStore) ResolvePosts(ctx context.Context, realmID string, ids []string, requestingUser string, env model.Environment) (map[string]*model.Post, error) {
	if len(ids) == 0 {
		return map[string]*model.Post{}, nil
	}

	var posts []*model.Post
	if err := s.DB.WithContext(ctx).
		Where("realm_id = ? AND environment = ? AND id IN ?", realmID, env, ids).
		Find(&posts).Error; err != nil {
		return nil, errors.Wrap(err, "fail to load posts")
	}

	byId := make(map[string]*model.Post, len(posts))
	for _, post := range posts {
		byId[post.Id] = post
	}
	return byId, nil
}
