package relevance

import "testing"

func newTestFilter() *Filter {
	return NewFilter([]string{"Borno", "Maiduguri", "Zamfara"})
}

func TestIsRelevantRequiresBothTests(t *testing.T) {
	t.Parallel()

	f := newTestFilter()

	if !f.IsRelevant("Gunmen attack village in Borno", "several killed", "", false) {
		t.Error("conflict keyword plus place should be relevant")
	}
	if f.IsRelevant("Festival opens in Maiduguri", "music and dance all week", "", false) {
		t.Error("place alone is not evidence of relevance")
	}
	if f.IsRelevant("Gunmen attack village", "several killed in remote area", "", false) {
		t.Error("conflict keyword without a local place should be irrelevant for general feeds")
	}
}

func TestScopedFeedBypassesPlaceTest(t *testing.T) {
	t.Parallel()

	f := newTestFilter()

	if !f.IsRelevant("Gunmen attack village", "several killed in remote area", "", true) {
		t.Error("scoped feed should not require a place match")
	}
	if f.IsRelevant("Festival opens downtown", "music and dance all week", "", true) {
		t.Error("scoped feed still requires conflict vocabulary")
	}
}

func TestMatchingIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	f := newTestFilter()

	if !f.IsRelevant("GUNMEN ATTACK ZAMFARA COMMUNITY", "", "details pending", false) {
		t.Error("uppercase text should still match")
	}
}
