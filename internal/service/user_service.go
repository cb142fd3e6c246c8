package service

import (
	"errors"

	"paper-cloud/internal/dao"
	"paper-cloud/internal/model"
	"paper-cloud/internal/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExists = errors.New("用户名已存在")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrPasswordIncorrect = errors.New("密码错误")
)

type UserService interface {
	Register(req *model.RegisterRequest) (*model.User, error)
	Login(req *model.LoginRequest) (string, error) // 返回JWT token
}

type userService struct {
	userDao dao.UserDao
}

func NewUserService(userDao dao.UserDao) UserService {
	return &userService{userDao: userDao}
}

func (us *userService) Register(req *model.RegisterRequest) (*model.User, error) {
	exists, err := us.userDao.CheckFieldExists("username", req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashed),
		Email:    req.Email,
	}
	if err := us.userDao.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (us *userService) Login(req *model.LoginRequest) (string, error) {
	user, err := us.userDao.GetUserByName(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrPasswordIncorrect
	}

	return utils.GenerateToken(user.ID)
}
