package auth

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"wayfare/db"
	"wayfare/models"
	"wayfare/utils"

	"github.com/go-resty/resty/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

var oauthClient = resty.New().SetTimeout(10 * time.Second)

type kakaoTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type kakaoUserResponse struct {
	ID           int64 `json:"id"`
	KakaoAccount struct {
		Email   string `json:"email"`
		Profile struct {
			Nickname        string `json:"nickname"`
			ProfileImageURL string `json:"profile_image_url"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

// GET /api/auth/oauth/kakao/callback?code=...
// Exchanges the authorization code, finds or creates the linked user, and
// issues our own token pair.
func kakaoCallbackHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Authorization code is required")
		return
	}

	var tokenResp kakaoTokenResponse
	resp, err := oauthClient.R().
		SetContext(r.Context()).
		SetFormData(map[string]string{
			"grant_type":   "authorization_code",
			"client_id":    os.Getenv("KAKAO_CLIENT_ID"),
			"redirect_uri": os.Getenv("KAKAO_REDIRECT_URI"),
			"code":         code,
		}).
		SetResult(&tokenResp).
		Post("https://kauth.kakao.com/oauth/token")
	if err != nil || resp.IsError() || tokenResp.AccessToken == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "OAuth token exchange failed")
		return
	}

	var userResp kakaoUserResponse
	resp, err = oauthClient.R().
		SetContext(r.Context()).
		SetAuthToken(tokenResp.AccessToken).
		SetResult(&userResp).
		Get("https://kapi.kakao.com/v2/user/me")
	if err != nil || resp.IsError() || userResp.ID == 0 {
		utils.RespondWithError(w, http.StatusUnauthorized, "OAuth profile fetch failed")
		return
	}

	user, err := findOrCreateOAuthUser("kakao", strconv.FormatInt(userResp.ID, 10), userResp.KakaoAccount.Email, userResp.KakaoAccount.Profile.Nickname, userResp.KakaoAccount.Profile.ProfileImageURL)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "OAuth login failed")
		return
	}

	issueTokens(w, user)
}

func findOrCreateOAuthUser(provider, oauthID, email, nickname, profilePic string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.UserCollection.FindOne(ctx, bson.M{"oauth_provider": provider, "oauth_id": oauthID}).Decode(&user)
	if err == nil {
		return user, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.User{}, err
	}

	// Link by email when the account already exists from email signup.
	if email != "" {
		err = db.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		if err == nil {
			_, err = db.UserCollection.UpdateOne(ctx,
				bson.M{"userid": user.UserID},
				bson.M{"$set": bson.M{"oauth_provider": provider, "oauth_id": oauthID}},
			)
			return user, err
		}
		if err != mongo.ErrNoDocuments {
			return models.User{}, err
		}
	}

	if nickname == "" {
		nickname = fmt.Sprintf("%s_%s", provider, oauthID)
	}

	user = models.User{
		UserID:        utils.GenerateRandomString(10),
		Username:      nickname,
		Email:         email,
		OAuthProvider: provider,
		OAuthID:       oauthID,
		ProfilePic:    profilePic,
		Role:          []string{"user"},
		CreatedAt:     time.Now(),
	}
	if _, err := db.UserCollection.InsertOne(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
