package ports

// StalenessChecker decides whether a cached artifact may be reused.
//
//go:generate go run go.uber.org/mock/mockgen -source=checker.go -destination=mocks/mock_checker.go -package=mocks
type StalenessChecker interface {
	// NeedsRegeneration reports whether the artifact at artifactPath must be
	// regenerated from sourcePath. It fails if the source does not exist, if
	// the candidate artifact cannot be read, or if the candidate was not
	// generated by this system.
	NeedsRegeneration(sourcePath, artifactPath string) (bool, error)
}
