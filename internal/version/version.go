package version

// Version is overridden at build time with
// -ldflags "-X github.com/bnema/repobrief/internal/version.Version=vX.Y.Z".
var Version = "dev"
