package user

import "context"

type StubUserRepo struct {
	Users  []User
	nextId int
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) (int, error) {
	s.nextId++
	user.Id = s.nextId
	s.Users = append(s.Users, user)
	return user.Id, nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id int) (User, error) {
	for _, u := range s.Users {
		if u.Id == id {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) GetUserByUid(ctx context.Context, uid string) (User, error) {
	for _, u := range s.Users {
		if u.Uid == uid {
			return u, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubUserRepo) UpdateUser(ctx context.Context, userId int, user User) (User, error) {
	for i, u := range s.Users {
		if u.Id == userId {
			user.Id = userId
			user.Uid = u.Uid
			s.Users[i] = user
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}
