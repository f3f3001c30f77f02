package datastore

// Manager opens the buckets under the data directory.
type Manager struct {
	RootPath string

	sources Bucket
}

func New(rootPath string) (*Manager, error) {
	mgr := &Manager{
		RootPath: rootPath,
		sources:  Bucket{RootPath: rootPath, Name: "sources"},
	}
	if err := mgr.sources.Init(); err != nil {
		return nil, err
	}
	return mgr, nil
}

// Sources holds submitted source code, one object per submission.
func (m *Manager) Sources() *Bucket {
	return &m.sources
}
