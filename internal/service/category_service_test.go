package service

import (
	"context"
	"testing"
)

func TestCategoryServiceEnsureAndDelete(t *testing.T) {
	t.Parallel()
	store := &fakeCategoryStore{}
	svc := NewCategoryService(store)
	ctx := context.Background()

	created, err := svc.Ensure(ctx, 1, "health", "#00ff00")
	if err != nil {
		t.Fatalf("Ensure: %v", err)
	}
	same, err := svc.Ensure(ctx, 1, "health", "#ffffff")
	if err != nil {
		t.Fatalf("Ensure again: %v", err)
	}
	if created.ID != same.ID {
		t.Fatalf("Ensure created a duplicate: %d vs %d", created.ID, same.ID)
	}

	list, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Name != "health" || list[0].Color != "#00ff00" {
		t.Fatalf("List = %+v", list)
	}

	if err := svc.Delete(ctx, 1, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	list, err = svc.List(ctx, 1)
	if err != nil {
		t.Fatalf("List after delete: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("List after delete = %+v, want empty", list)
	}
}
