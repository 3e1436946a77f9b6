package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for
// testing. Each method is backed by a function field. If the function field
// is nil, the method returns sensible zero values.
type MockRepository struct {
	PathFunc             func() string
	WorkingDirectoryFunc func() string
	HeadFunc             func() (Branch, error)
	ResolveRefFunc       func(string) (string, error)
	FirstCommitFunc      func() (string, error)
	LogAncestryPathFunc  func(string, string) ([]Commit, error)
	RemoteBranchesFunc   func() ([]Branch, error)
	CommitFromShaFunc    func(string) (Commit, error)
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) ResolveRef(expr string) (string, error) {
	if m.ResolveRefFunc != nil {
		return m.ResolveRefFunc(expr)
	}
	return "", nil
}

func (m *MockRepository) FirstCommit() (string, error) {
	if m.FirstCommitFunc != nil {
		return m.FirstCommitFunc()
	}
	return "", nil
}

func (m *MockRepository) LogAncestryPath(root, tip string) ([]Commit, error) {
	if m.LogAncestryPathFunc != nil {
		return m.LogAncestryPathFunc(root, tip)
	}
	return nil, nil
}

func (m *MockRepository) RemoteBranches() ([]Branch, error) {
	if m.RemoteBranchesFunc != nil {
		return m.RemoteBranchesFunc()
	}
	return nil, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}
