package budget

import "context"

type StubBudgetRepo struct {
	Settings map[int]Settings
}

func (s *StubBudgetRepo) GetSettings(ctx context.Context, userId int) (*Settings, error) {
	if s.Settings == nil {
		return nil, nil
	}
	settings, ok := s.Settings[userId]
	if !ok {
		return nil, nil
	}
	return &settings, nil
}

func (s *StubBudgetRepo) SaveSettings(ctx context.Context, userId int, settings Settings) (Settings, error) {
	if s.Settings == nil {
		s.Settings = make(map[int]Settings)
	}
	s.Settings[userId] = settings
	return settings, nil
}
