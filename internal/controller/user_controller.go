package controller

import (
	"errors"

	"paper-cloud/internal/model"
	"paper-cloud/internal/service"
	"paper-cloud/pkgs/errcode"
	"paper-cloud/pkgs/response"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	userService service.UserService
}

func NewUserController(userService service.UserService) *UserController {
	return &UserController{userService: userService}
}

func (uc *UserController) Register(ctx *gin.Context) {
	req := &model.RegisterRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "参数错误")
		return
	}

	user, err := uc.userService.Register(req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			response.ParamError(ctx, errcode.UserAlreadyExists, "用户名已存在")
			return
		}
		response.InternalError(ctx, errcode.InternalServerError, "注册失败")
		return
	}

	response.SuccessWithMessage(ctx, "注册成功", gin.H{"user_id": user.ID})
}

func (uc *UserController) Login(ctx *gin.Context) {
	req := &model.LoginRequest{}
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.ParamError(ctx, errcode.ParamBindError, "参数错误")
		return
	}

	token, err := uc.userService.Login(req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.ParamError(ctx, errcode.UserNotFound, "用户不存在")
		case errors.Is(err, service.ErrPasswordIncorrect):
			response.ParamError(ctx, errcode.PasswordError, "密码错误")
		default:
			response.InternalError(ctx, errcode.InternalServerError, "登录失败")
		}
		return
	}

	response.SuccessWithMessage(ctx, "登录成功", gin.H{"token": token})
}
