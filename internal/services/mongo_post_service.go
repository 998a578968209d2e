package services

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/amigos/backend/internal/models"
)

type MongoPostService struct {
	client   *mongo.Client
	db       *mongo.Database
	postsCol *mongo.Collection
	users    UserService
	images   ImageService
}

func NewMongoPostService(ctx context.Context, mongoURI, dbName string, users UserService, images ImageService) (*MongoPostService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("posts")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "like_count", Value: -1}}},
	})

	log.Printf("MongoDB connected (posts): db=%s", dbName)
	return &MongoPostService{client: client, db: db, postsCol: col, users: users, images: images}, nil
}

func (s *MongoPostService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoPostService) Publish(ctx context.Context, userID string, req *models.PublishPostRequest) (*models.Post, error) {
	pictureID := ""
	if req.Picture != "" {
		id, err := s.images.Store(ctx, req.Picture)
		if err != nil {
			return nil, err
		}
		pictureID = id
	}

	now := time.Now().UTC()
	post := models.Post{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		PictureID:   pictureID,
		Likes:       []string{},
		LikeCount:   0,
		PetIDs:      req.PetIDs,
		Status:      models.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if post.PetIDs == nil {
		post.PetIDs = []string{}
	}
	if _, err := s.postsCol.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) Update(ctx context.Context, userID, postID string, req *models.UpdatePostRequest) (*models.Post, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Picture != nil && *req.Picture != "" {
		pictureID, err := s.images.Store(ctx, *req.Picture)
		if err != nil {
			return nil, err
		}
		set["picture_id"] = pictureID
	}
	if req.PetIDs != nil {
		set["pet_ids"] = *req.PetIDs
	}

	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID, "user_id": userID, "status": models.StatusActive},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var updated models.Post
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &updated, nil
}

func (s *MongoPostService) Delete(ctx context.Context, userID, postID string) error {
	res, err := s.postsCol.UpdateOne(
		ctx,
		bson.M{"_id": postID, "user_id": userID, "status": models.StatusActive},
		bson.M{"$set": bson.M{"status": models.StatusDisabled, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

func (s *MongoPostService) ToggleLike(ctx context.Context, userID, postID string) (*models.Post, error) {
	now := time.Now().UTC()
	after := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Membership removal and the counter decrement travel in one guarded
	// update so likes and like_count can never drift apart.
	res := s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID, "status": models.StatusActive, "likes": userID},
		bson.M{
			"$pull": bson.M{"likes": userID},
			"$inc":  bson.M{"like_count": -1},
			"$set":  bson.M{"updated_at": now},
		},
		after,
	)

	var post models.Post
	err := res.Decode(&post)
	if err == nil {
		return &post, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	// Not currently liked: add instead.
	res = s.postsCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": postID, "status": models.StatusActive, "likes": bson.M{"$ne": userID}},
		bson.M{
			"$push": bson.M{"likes": userID},
			"$inc":  bson.M{"like_count": 1},
			"$set":  bson.M{"updated_at": now},
		},
		after,
	)
	if err := res.Decode(&post); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) FindAllByUser(ctx context.Context, userID string) ([]models.Post, error) {
	return s.find(ctx, bson.M{"user_id": userID, "status": models.StatusActive})
}

func (s *MongoPostService) FindFeed(ctx context.Context, userID string) ([]models.Post, error) {
	following, err := s.users.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	// The caller's own posts never show in the feed.
	filter := bson.M{
		"user_id": bson.M{"$in": following, "$ne": userID},
		"status":  models.StatusActive,
	}
	return s.find(ctx, filter)
}

func (s *MongoPostService) FindByLikeAmount(ctx context.Context, threshold int) ([]models.Post, error) {
	filter := bson.M{
		"status":     models.StatusActive,
		"like_count": bson.M{"$gte": threshold},
	}
	return s.find(ctx, filter)
}

func (s *MongoPostService) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var post models.Post
	err := s.postsCol.FindOne(ctx, bson.M{"_id": id, "status": models.StatusActive}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

func (s *MongoPostService) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	cur, err := s.postsCol.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	for cur.Next(ctx) {
		var p models.Post
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, cur.Err()
}
