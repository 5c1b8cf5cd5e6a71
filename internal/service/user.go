package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-admin/internal/domain"
	"inventory-admin/pkg/utils"
)

type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, log *zap.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

type CreateUserInput struct {
	Email    string  `json:"email" form:"email" binding:"required,email"`
	Password string  `json:"password" form:"password" binding:"required,min=6"`
	Role     *string `json:"role" form:"role" binding:"omitempty,oneof=USER ADMIN"`
	Name     *string `json:"name" form:"name"`
	IsActive *bool   `json:"isActive" form:"isActive"`

	// Personal information
	EmployeeType  *string `json:"employeeType" form:"employeeType"`
	NationalID    *string `json:"nationalId" form:"nationalId"`
	TitleTh       *string `json:"titleTh" form:"titleTh"`
	FirstNameTh   *string `json:"firstNameTh" form:"firstNameTh"`
	LastNameTh    *string `json:"lastNameTh" form:"lastNameTh"`
	FirstNameEn   *string `json:"firstNameEn" form:"firstNameEn"`
	LastNameEn    *string `json:"lastNameEn" form:"lastNameEn"`
	Nickname      *string `json:"nickname" form:"nickname"`
	Gender        *string `json:"gender" form:"gender"`
	BloodType     *string `json:"bloodType" form:"bloodType"`
	BirthDate     *string `json:"birthDate" form:"birthDate"`
	Ethnicity     *string `json:"ethnicity" form:"ethnicity"`
	Nationality   *string `json:"nationality" form:"nationality"`
	Religion      *string `json:"religion" form:"religion"`
	Phone         *string `json:"phone" form:"phone"`
	Province      *string `json:"province" form:"province"`
	MaritalStatus *string `json:"maritalStatus" form:"maritalStatus"`

	// Employment information
	Username         *string `json:"username" form:"username"`
	EmployeeID       *string `json:"employeeId" form:"employeeId"`
	Position         *string `json:"position" form:"position"`
	PositionLevel    *string `json:"positionLevel" form:"positionLevel"`
	Department       *string `json:"department" form:"department"`
	EmploymentStatus *string `json:"employmentStatus" form:"employmentStatus"`
	StartDate        *string `json:"startDate" form:"startDate"`
}

type UpdateUserInput struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=USER ADMIN"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`

	EmployeeType  *string `json:"employeeType"`
	NationalID    *string `json:"nationalId"`
	TitleTh       *string `json:"titleTh"`
	FirstNameTh   *string `json:"firstNameTh"`
	LastNameTh    *string `json:"lastNameTh"`
	FirstNameEn   *string `json:"firstNameEn"`
	LastNameEn    *string `json:"lastNameEn"`
	Nickname      *string `json:"nickname"`
	Gender        *string `json:"gender"`
	BloodType     *string `json:"bloodType"`
	BirthDate     *string `json:"birthDate"`
	Ethnicity     *string `json:"ethnicity"`
	Nationality   *string `json:"nationality"`
	Religion      *string `json:"religion"`
	Phone         *string `json:"phone"`
	Province      *string `json:"province"`
	MaritalStatus *string `json:"maritalStatus"`

	Username         *string `json:"username"`
	EmployeeID       *string `json:"employeeId"`
	Position         *string `json:"position"`
	PositionLevel    *string `json:"positionLevel"`
	Department       *string `json:"department"`
	EmploymentStatus *string `json:"employmentStatus"`
	StartDate        *string `json:"startDate"`
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	// 唯一性预检查，只作快速失败；最终由 users.email 唯一索引兜底
	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil {
		s.log.Error("check user email failed", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, &domain.ConflictError{Message: "Email already exists"}
	}

	birthDate, err := parseDatePtr(in.BirthDate)
	if err != nil {
		return nil, err
	}
	startDate, err := parseDatePtr(in.StartDate)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:       utils.NewID(),
		Email:    in.Email,
		Password: utils.HashPassword(in.Password),
		Name:     in.Name,
		Role:     domain.RoleUser,
		IsActive: true,

		EmployeeType:  in.EmployeeType,
		NationalID:    in.NationalID,
		TitleTh:       in.TitleTh,
		FirstNameTh:   in.FirstNameTh,
		LastNameTh:    in.LastNameTh,
		FirstNameEn:   in.FirstNameEn,
		LastNameEn:    in.LastNameEn,
		Nickname:      in.Nickname,
		Gender:        in.Gender,
		BloodType:     in.BloodType,
		BirthDate:     birthDate,
		Ethnicity:     in.Ethnicity,
		Nationality:   in.Nationality,
		Religion:      in.Religion,
		Phone:         in.Phone,
		Province:      in.Province,
		MaritalStatus: in.MaritalStatus,

		Username:         in.Username,
		EmployeeID:       in.EmployeeID,
		Position:         in.Position,
		PositionLevel:    in.PositionLevel,
		Department:       in.Department,
		EmploymentStatus: in.EmploymentStatus,
		StartDate:        startDate,
	}
	if in.Role != nil {
		u.Role = *in.Role
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}

	if err := s.repo.Create(ctx, u); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		s.log.Error("create user failed", zap.Error(err))
		return nil, err
	}
	return s.FindOne(ctx, u.ID)
}

func (s *UserService) List(ctx context.Context, f domain.UserFilter, q domain.ListQuery) (*domain.ListResult[domain.User], error) {
	items, total, err := s.repo.List(ctx, f, q)
	if err != nil {
		s.log.Error("list users failed", zap.Error(err))
		return nil, err
	}
	return domain.NewListResult(items, total, q), nil
}

func (s *UserService) FindOne(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Error("find user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if u == nil {
		return nil, &domain.NotFoundError{Entity: "User", ID: id}
	}
	return u, nil
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}

	// 邮箱真的变化时才重查唯一性；改成当前值视为幂等，直接放行
	if in.Email != nil && *in.Email != current.Email {
		existing, err := s.repo.FindByEmail(ctx, *in.Email)
		if err != nil {
			s.log.Error("check user email failed", zap.Error(err))
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, &domain.ConflictError{Message: "Email already exists"}
		}
	}

	data := map[string]any{}
	if in.Email != nil && *in.Email != current.Email {
		data["email"] = *in.Email
	}
	if in.Password != nil {
		data["password"] = utils.HashPassword(*in.Password)
	}
	setIf(data, "role", in.Role)
	setIf(data, "name", in.Name)
	setIf(data, "is_active", in.IsActive)

	setIf(data, "employee_type", in.EmployeeType)
	setIf(data, "national_id", in.NationalID)
	setIf(data, "title_th", in.TitleTh)
	setIf(data, "first_name_th", in.FirstNameTh)
	setIf(data, "last_name_th", in.LastNameTh)
	setIf(data, "first_name_en", in.FirstNameEn)
	setIf(data, "last_name_en", in.LastNameEn)
	setIf(data, "nickname", in.Nickname)
	setIf(data, "gender", in.Gender)
	setIf(data, "blood_type", in.BloodType)
	setIf(data, "ethnicity", in.Ethnicity)
	setIf(data, "nationality", in.Nationality)
	setIf(data, "religion", in.Religion)
	setIf(data, "phone", in.Phone)
	setIf(data, "province", in.Province)
	setIf(data, "marital_status", in.MaritalStatus)

	setIf(data, "username", in.Username)
	setIf(data, "employee_id", in.EmployeeID)
	setIf(data, "position", in.Position)
	setIf(data, "position_level", in.PositionLevel)
	setIf(data, "department", in.Department)
	setIf(data, "employment_status", in.EmploymentStatus)

	if t, err := parseDatePtr(in.BirthDate); err != nil {
		return nil, err
	} else if t != nil {
		data["birth_date"] = *t
	}
	if t, err := parseDatePtr(in.StartDate); err != nil {
		return nil, err
	} else if t != nil {
		data["start_date"] = *t
	}

	if len(data) > 0 {
		if err := s.repo.Update(ctx, id, data); err != nil {
			if domain.IsConflict(err) {
				return nil, err
			}
			s.log.Error("update user failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}
	}
	return s.FindOne(ctx, id)
}

func (s *UserService) Remove(ctx context.Context, id string) (string, error) {
	if _, err := s.FindOne(ctx, id); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("delete user failed", zap.String("id", id), zap.Error(err))
		return "", err
	}
	return fmt.Sprintf("User with ID %s deleted successfully", id), nil
}

// ValidatePassword 留给未来的登录流程用；本服务不实现会话
func (s *UserService) ValidatePassword(password, hashed string) bool {
	return utils.CheckPassword(password, hashed)
}
