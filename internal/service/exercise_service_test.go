package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/awright222/fitiva/internal/repository/memory"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFileStorage records object operations instead of talking to S3.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newExerciseFixture() (*fakeFileStorage, ExerciseService) {
	storage := &fakeFileStorage{}
	return storage, NewExerciseService(memory.NewExerciseRepository(), storage)
}

func TestUpdateExerciseOwnership(t *testing.T) {
	_, svc := newExerciseFixture()
	owner := primitive.NewObjectID()

	created, err := svc.CreateExercise(context.Background(), owner, ExerciseInput{Name: "Goblet Squat"})
	if err != nil {
		t.Fatalf("CreateExercise() error = %v", err)
	}

	if _, err := svc.UpdateExercise(context.Background(), primitive.NewObjectID(), created.ID, ExerciseInput{Name: "Stolen Squat"}); !errors.Is(err, ErrExerciseAccessDenied) {
		t.Errorf("UpdateExercise(other trainer) error = %v, want %v", err, ErrExerciseAccessDenied)
	}

	updated, err := svc.UpdateExercise(context.Background(), owner, created.ID, ExerciseInput{Name: "Front Squat"})
	if err != nil {
		t.Fatalf("UpdateExercise(owner) error = %v", err)
	}
	if updated.Name != "Front Squat" {
		t.Errorf("Name = %q, want %q", updated.Name, "Front Squat")
	}
}

func TestRequestDemoUploadURL(t *testing.T) {
	_, svc := newExerciseFixture()
	owner := primitive.NewObjectID()

	created, err := svc.CreateExercise(context.Background(), owner, ExerciseInput{Name: "Deadlift"})
	if err != nil {
		t.Fatalf("CreateExercise() error = %v", err)
	}

	if _, err := svc.RequestDemoUploadURL(context.Background(), owner, created.ID, "image/png"); err == nil {
		t.Error("RequestDemoUploadURL() accepted a non-video content type")
	}
	if _, err := svc.RequestDemoUploadURL(context.Background(), primitive.NewObjectID(), created.ID, "video/mp4"); !errors.Is(err, ErrExerciseAccessDenied) {
		t.Errorf("RequestDemoUploadURL(other trainer) error = %v, want %v", err, ErrExerciseAccessDenied)
	}

	resp, err := svc.RequestDemoUploadURL(context.Background(), owner, created.ID, "video/mp4")
	if err != nil {
		t.Fatalf("RequestDemoUploadURL() error = %v", err)
	}
	if !strings.HasPrefix(resp.ObjectKey, "demos/"+owner.Hex()+"/"+created.ID.Hex()+"/") {
		t.Errorf("ObjectKey = %q, want demos/<trainer>/<exercise>/ prefix", resp.ObjectKey)
	}
	if resp.UploadURL == "" {
		t.Error("UploadURL is empty")
	}
}

func TestConfirmDemoUploadReplacesOldObject(t *testing.T) {
	storage, svc := newExerciseFixture()
	owner := primitive.NewObjectID()

	created, err := svc.CreateExercise(context.Background(), owner, ExerciseInput{Name: "Deadlift"})
	if err != nil {
		t.Fatalf("CreateExercise() error = %v", err)
	}

	if _, err := svc.ConfirmDemoUpload(context.Background(), owner, created.ID, "demos/old.mp4"); err != nil {
		t.Fatalf("first ConfirmDemoUpload() error = %v", err)
	}
	if _, err := svc.ConfirmDemoUpload(context.Background(), owner, created.ID, "demos/new.mp4"); err != nil {
		t.Fatalf("second ConfirmDemoUpload() error = %v", err)
	}

	if len(storage.deleted) != 1 || storage.deleted[0] != "demos/old.mp4" {
		t.Errorf("deleted objects = %v, want [demos/old.mp4]", storage.deleted)
	}

	url, err := svc.GetDemoVideoURL(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetDemoVideoURL() error = %v", err)
	}
	if !strings.HasSuffix(url, "demos/new.mp4") {
		t.Errorf("GetDemoVideoURL() = %q, want the replacement object", url)
	}
}

func TestGetDemoVideoURLWithoutVideo(t *testing.T) {
	_, svc := newExerciseFixture()

	created, err := svc.CreateExercise(context.Background(), primitive.NewObjectID(), ExerciseInput{Name: "Plank"})
	if err != nil {
		t.Fatalf("CreateExercise() error = %v", err)
	}
	if _, err := svc.GetDemoVideoURL(context.Background(), created.ID); !errors.Is(err, ErrNoDemoVideo) {
		t.Errorf("GetDemoVideoURL() error = %v, want %v", err, ErrNoDemoVideo)
	}
}

func TestDeleteExercise(t *testing.T) {
	storage, svc := newExerciseFixture()
	owner := primitive.NewObjectID()

	created, err := svc.CreateExercise(context.Background(), owner, ExerciseInput{Name: "Deadlift"})
	if err != nil {
		t.Fatalf("CreateExercise() error = %v", err)
	}
	if _, err := svc.ConfirmDemoUpload(context.Background(), owner, created.ID, "demos/demo.mp4"); err != nil {
		t.Fatalf("ConfirmDemoUpload() error = %v", err)
	}

	if err := svc.DeleteExercise(context.Background(), primitive.NewObjectID(), created.ID); !errors.Is(err, ErrExerciseAccessDenied) {
		t.Errorf("DeleteExercise(other trainer) error = %v, want %v", err, ErrExerciseAccessDenied)
	}

	if err := svc.DeleteExercise(context.Background(), owner, created.ID); err != nil {
		t.Fatalf("DeleteExercise(owner) error = %v", err)
	}
	if _, err := svc.GetExerciseByID(context.Background(), created.ID); !errors.Is(err, ErrExerciseNotFound) {
		t.Errorf("GetExerciseByID() after delete error = %v, want %v", err, ErrExerciseNotFound)
	}
	found := false
	for _, key := range storage.deleted {
		if key == "demos/demo.mp4" {
			found = true
		}
	}
	if !found {
		t.Errorf("demo object not cleaned up; deleted = %v", storage.deleted)
	}
}
