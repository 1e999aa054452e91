package gate

import (
	"testing"

	"homehelper/models"
	"homehelper/utils"
)

func TestDecideUnauthenticated(t *testing.T) {
	allowLists := [][]models.Role{
		nil,
		{},
		{models.RoleUser},
		{models.RoleProvider, models.RoleAdmin},
		{models.RoleUser, models.RoleProvider, models.RoleAdmin},
	}

	for _, allowed := range allowLists {
		out := Decide(View{IsAuthenticated: false}, allowed, "/user/my-bookings")
		if out.Kind != RedirectToLogin {
			t.Fatalf("allowed=%v: expected RedirectToLogin, got %v", allowed, out.Kind)
		}
		if out.Path != utils.RouteLogin {
			t.Fatalf("allowed=%v: expected login path, got %s", allowed, out.Path)
		}
		if out.From != "/user/my-bookings" {
			t.Fatalf("allowed=%v: expected original location preserved, got %q", allowed, out.From)
		}
	}
}

func TestDecideRolePairs(t *testing.T) {
	roles := []models.Role{models.RoleUser, models.RoleProvider, models.RoleAdmin}

	for _, actual := range roles {
		view := View{IsAuthenticated: true, Role: actual}

		// An empty allow-list admits any authenticated role.
		if out := Decide(view, nil, "/"); out.Kind != Render {
			t.Fatalf("role %s with empty allow-list: expected Render, got %v", actual, out.Kind)
		}

		for _, declared := range roles {
			out := Decide(view, []models.Role{declared}, "/")
			if declared == actual {
				if out.Kind != Render {
					t.Fatalf("role %s allowed as %s: expected Render, got %v", actual, declared, out.Kind)
				}
				continue
			}
			if out.Kind != RedirectToRoleHome {
				t.Fatalf("role %s declared %s: expected RedirectToRoleHome, got %v", actual, declared, out.Kind)
			}
			if out.Path != HomePathFor(actual) {
				t.Fatalf("role %s: expected redirect to own home %s, got %s", actual, HomePathFor(actual), out.Path)
			}
		}
	}
}

func TestHomePathForTotal(t *testing.T) {
	cases := map[models.Role]string{
		models.RoleAdmin:    utils.RouteAdminDashboard,
		models.RoleProvider: utils.RouteProviderDashboard,
		models.RoleUser:     utils.RouteUserServices,
		models.Role("bot"):  utils.RouteHome,
		models.Role(""):     utils.RouteHome,
	}
	for role, want := range cases {
		if got := HomePathFor(role); got != want {
			t.Fatalf("HomePathFor(%q) = %s, want %s", role, got, want)
		}
	}
}

func TestRedirectHome(t *testing.T) {
	if _, ok := RedirectHome(View{IsLoading: true, IsAuthenticated: true, Role: models.RoleAdmin}); ok {
		t.Fatal("expected no decision while session is still loading")
	}

	out, ok := RedirectHome(View{IsAuthenticated: false})
	if !ok || out.Kind != RedirectToLogin {
		t.Fatalf("expected login redirect for anonymous session, got %v ok=%v", out.Kind, ok)
	}
	if out.From != utils.RouteDashboard {
		t.Fatalf("expected dashboard recorded as origin, got %q", out.From)
	}

	out, ok = RedirectHome(View{IsAuthenticated: true, Role: models.RoleProvider})
	if !ok || out.Kind != RedirectToRoleHome || out.Path != utils.RouteProviderDashboard {
		t.Fatalf("expected provider home redirect, got %+v ok=%v", out, ok)
	}
}
