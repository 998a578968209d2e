package services

import (
	"context"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/amigos/backend/internal/models"
)

type MongoUserService struct {
	client   *mongo.Client
	db       *mongo.Database
	usersCol *mongo.Collection
}

func NewMongoUserService(ctx context.Context, mongoURI, dbName string) (*MongoUserService, error) {
	client, err := dialMongo(ctx, mongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)
	col := db.Collection("users")

	// Best-effort indexes.
	_, _ = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "login", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	})

	log.Printf("MongoDB connected (users): db=%s", dbName)
	return &MongoUserService{client: client, db: db, usersCol: col}, nil
}

func (s *MongoUserService) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoUserService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	count, err := s.usersCol.CountDocuments(ctx, bson.M{"login": req.Login})
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrLoginTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Login:        req.Login,
		Name:         req.Name,
		PasswordHash: string(hashedPassword),
		Permissions:  []string{models.PermissionUser},
		Status:       models.StatusActive,
		Following:    []string{},
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.usersCol.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrLoginTaken
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) Login(ctx context.Context, login, password string) (*models.User, error) {
	var user models.User
	err := s.usersCol.FindOne(ctx, bson.M{"login": login, "status": models.StatusActive}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

func (s *MongoUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.usersCol.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrBadCredentials
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"password_hash": string(hashedPassword)},
	})
	return err
}

func (s *MongoUserService) Grant(ctx context.Context, userID string, permissions []string) (*models.User, error) {
	res := s.usersCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"permissions": bson.M{"$each": permissions}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := res.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) Revoke(ctx context.Context, userID string, permissions []string) (*models.User, error) {
	res := s.usersCol.FindOneAndUpdate(
		ctx,
		bson.M{"_id": userID},
		bson.M{"$pullAll": bson.M{"permissions": permissions}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var user models.User
	if err := res.Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *MongoUserService) Enable(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, models.StatusActive)
}

func (s *MongoUserService) Disable(ctx context.Context, userID string) error {
	return s.setStatus(ctx, userID, models.StatusDisabled)
}

func (s *MongoUserService) setStatus(ctx context.Context, userID string, status models.Status) error {
	res, err := s.usersCol.UpdateOne(ctx, bson.M{"_id": userID}, bson.M{
		"$set": bson.M{"status": status},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *MongoUserService) HasPermission(ctx context.Context, userID, permission string) error {
	var user models.User
	err := s.usersCol.FindOne(ctx, bson.M{"_id": userID, "status": models.StatusActive}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrUserNotFound
		}
		return err
	}
	for _, held := range user.Permissions {
		if held == permission {
			return nil
		}
	}
	return ErrPermissionDenied
}

func (s *MongoUserService) Follow(ctx context.Context, callerID, targetID string) error {
	if err := s.mustExist(ctx, targetID); err != nil {
		return err
	}

	// Guarded single update keeps membership append and the duplicate check
	// atomic under concurrent requests.
	res, err := s.usersCol.UpdateOne(
		ctx,
		bson.M{"_id": callerID, "following": bson.M{"$ne": targetID}},
		bson.M{"$push": bson.M{"following": targetID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if err := s.mustExist(ctx, callerID); err != nil {
			return err
		}
		return ErrAlreadyFollowing
	}
	return nil
}

func (s *MongoUserService) Unfollow(ctx context.Context, callerID, targetID string) error {
	if err := s.mustExist(ctx, targetID); err != nil {
		return err
	}

	res, err := s.usersCol.UpdateOne(
		ctx,
		bson.M{"_id": callerID, "following": targetID},
		bson.M{"$pull": bson.M{"following": targetID}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		if err := s.mustExist(ctx, callerID); err != nil {
			return err
		}
		return ErrNotFollowing
	}
	return nil
}

func (s *MongoUserService) GetFollowing(ctx context.Context, userID string) ([]string, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Following == nil {
		return []string{}, nil
	}
	return user.Following, nil
}

func (s *MongoUserService) FindIDsByName(ctx context.Context, query string) ([]string, error) {
	filter := bson.M{
		"status": models.StatusActive,
		"name":   bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"},
	}
	cur, err := s.usersCol.Find(ctx, filter, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var doc struct {
			ID string `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID)
	}
	return ids, cur.Err()
}

func (s *MongoUserService) mustExist(ctx context.Context, userID string) error {
	count, err := s.usersCol.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrUserNotFound
	}
	return nil
}
